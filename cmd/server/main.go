package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/ventmash/fancatalog/internal/cache"
	"github.com/ventmash/fancatalog/internal/config"
	"github.com/ventmash/fancatalog/internal/loader"
	"github.com/ventmash/fancatalog/internal/logging"
	"github.com/ventmash/fancatalog/internal/observability"
	"github.com/ventmash/fancatalog/internal/store"
	"github.com/ventmash/fancatalog/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"addr", cfg.Server.Addr(),
		"store", storeKind(cfg),
		"cache_enabled", cfg.Cache.RedisURL != "",
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()

	st, memory, err := buildStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to build catalog store", "error", err)
		os.Exit(1)
	}

	if n, err := st.Count(ctx); err != nil {
		slog.Warn("counting products failed", "error", err)
	} else {
		observability.ProductsLoaded.Set(float64(n))
		slog.Info("catalog ready", "products", n)
	}

	var listingCache *cache.Listing
	if cfg.Cache.RedisURL != "" {
		listingCache, err = cache.New(cfg.Cache.RedisURL, cfg.Cache.TTL)
		if err == nil {
			err = listingCache.Ping(ctx)
		}
		if err != nil {
			slog.Warn("listing cache unavailable, serving without it", "error", err)
			listingCache = nil
		}
	}

	server := web.NewServer(st, listingCache, cfg)

	// SIGHUP reloads the CSV in memory mode; the new index is swapped in
	// atomically once fully built.
	if memory != nil {
		go reloadOnSignal(memory, cfg.Catalog.CSVPath)
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}

func storeKind(cfg *config.Config) string {
	if cfg.UsePostgres() {
		return "postgres"
	}
	return "memory"
}

// buildStore selects the persistence collaborator: Postgres when a URL is
// configured, otherwise the CSV loaded into an in-memory index. The second
// return value is non-nil only in memory mode, for reload support.
func buildStore(ctx context.Context, cfg *config.Config) (store.Store, *store.Memory, error) {
	if cfg.UsePostgres() {
		poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		poolConfig.MaxConns = int32(cfg.Database.MaxConns)
		poolConfig.MinConns = int32(cfg.Database.MinConns)
		poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
		poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			return nil, nil, err
		}
		return store.NewPostgres(pool), nil, nil
	}

	products, skipped, err := loader.Load(cfg.Catalog.CSVPath)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("catalog csv loaded",
		"path", cfg.Catalog.CSVPath,
		"products", len(products),
		"skipped", skipped,
	)
	memory := store.NewMemory(products)
	return memory, memory, nil
}

func reloadOnSignal(memory *store.Memory, csvPath string) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	for range hup {
		products, skipped, err := loader.Load(csvPath)
		if err != nil {
			slog.Error("catalog reload failed, keeping current snapshot", "error", err)
			continue
		}
		memory.Replace(products)
		observability.ProductsLoaded.Set(float64(len(products)))
		slog.Info("catalog reloaded", "products", len(products), "skipped", skipped)
	}
}
