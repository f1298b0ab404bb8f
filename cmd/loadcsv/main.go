// Command loadcsv performs the one-time batch load of the fans CSV into
// Postgres: it creates the schema if needed, normalizes every row and
// replaces the products table in a single transaction.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/ventmash/fancatalog/internal/config"
	"github.com/ventmash/fancatalog/internal/loader"
	"github.com/ventmash/fancatalog/internal/logging"
	"github.com/ventmash/fancatalog/internal/store"
)

func main() {
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if !cfg.UsePostgres() {
		slog.Error("DATABASE_URL is required for loadcsv")
		os.Exit(1)
	}

	csvPath := cfg.Catalog.CSVPath
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	pg := store.NewPostgres(pool)
	if err := pg.InitSchema(ctx); err != nil {
		slog.Error("failed to initialize schema", "error", err)
		os.Exit(1)
	}

	products, skipped, err := loader.Load(csvPath)
	if err != nil {
		slog.Error("failed to read catalog csv", "path", csvPath, "error", err)
		os.Exit(1)
	}

	result, err := pg.ReplaceAll(ctx, products, csvPath, skipped)
	if err != nil {
		slog.Error("failed to load catalog into database", "error", err)
		os.Exit(1)
	}

	slog.Info("catalog loaded",
		"load_id", result.LoadID,
		"inserted", result.Inserted,
		"skipped", skipped,
		"source", csvPath,
	)
}
