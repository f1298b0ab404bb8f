package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ventmash/fancatalog/internal/catalog"
)

const productColumns = `id, number, type, model, size, diameter,
	airflow_min, airflow_max, airflow_raw,
	pressure_min, pressure_max, pressure_raw,
	power, noise_level, price,
	raw_diameter, raw_efficiency, raw_pressure, raw_power, raw_noise_level, raw_price,
	model_slug`

const schemaSQL = `
CREATE TABLE IF NOT EXISTS products (
	id TEXT PRIMARY KEY,
	number TEXT NOT NULL,
	type TEXT NOT NULL DEFAULT '',
	model TEXT NOT NULL DEFAULT '',
	size TEXT NOT NULL DEFAULT '',
	diameter DOUBLE PRECISION,
	airflow_min DOUBLE PRECISION,
	airflow_max DOUBLE PRECISION,
	airflow_raw TEXT NOT NULL DEFAULT '',
	pressure_min DOUBLE PRECISION,
	pressure_max DOUBLE PRECISION,
	pressure_raw TEXT NOT NULL DEFAULT '',
	power DOUBLE PRECISION,
	noise_level DOUBLE PRECISION,
	price DOUBLE PRECISION,
	raw_diameter TEXT NOT NULL DEFAULT '',
	raw_efficiency TEXT NOT NULL DEFAULT '',
	raw_pressure TEXT NOT NULL DEFAULT '',
	raw_power TEXT NOT NULL DEFAULT '',
	raw_noise_level TEXT NOT NULL DEFAULT '',
	raw_price TEXT NOT NULL DEFAULT '',
	model_slug TEXT NOT NULL DEFAULT '',
	pos INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_products_type ON products(type);
CREATE INDEX IF NOT EXISTS idx_products_model_slug ON products(model_slug);
CREATE INDEX IF NOT EXISTS idx_products_price ON products(price);

CREATE TABLE IF NOT EXISTS catalog_loads (
	id UUID PRIMARY KEY,
	source_file TEXT NOT NULL,
	rows_loaded INTEGER NOT NULL,
	rows_skipped INTEGER NOT NULL,
	loaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// Postgres serves catalog queries from the products table populated by
// cmd/loadcsv. Filter and sort translation must mirror the in-memory engine
// exactly, including the absent-value exclusion rule and the range overlap
// formula.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps a connection pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// InitSchema creates the products and catalog_loads tables if missing.
func (s *Postgres) InitSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// buildListQuery translates a filter and sort into a parameterized SELECT.
// Split out of List so the translation is testable without a database.
func buildListQuery(f catalog.Filter, sortOrder catalog.Sort) (string, []any) {
	wb := NewWhereBuilder()

	if q := strings.ToLower(catalog.NormalizeWhitespace(f.Query)); q != "" {
		// Containment over the same concatenation the in-memory engine uses,
		// with LIKE metacharacters escaped so q is a plain substring.
		wb.AddClause(`LOWER(model || ' ' || size || ' ' || type) LIKE $%d ESCAPE '\'`, "%"+escapeLike(q)+"%")
	}
	if f.Type != "" {
		wb.Add("type", f.Type)
	}
	if f.Diameter != nil {
		wb.Add("diameter", *f.Diameter)
	}

	addScalarBounds(wb, "price", f.MinPrice, f.MaxPrice)
	addScalarBounds(wb, "power", f.MinPower, f.MaxPower)
	addScalarBounds(wb, "noise_level", f.MinNoise, f.MaxNoise)
	addScalarBounds(wb, "diameter", f.MinDiameter, f.MaxDiameter)

	addOverlapBounds(wb, "airflow", f.MinAirflow, f.MaxAirflow)
	addOverlapBounds(wb, "pressure", f.MinPressure, f.MaxPressure)

	where, args := wb.Build()

	direction := "ASC"
	if sortOrder == catalog.SortPriceDesc {
		direction = "DESC"
	}
	// COLLATE "C" keeps the model tie-break bytewise, matching the in-memory
	// comparison rather than the database locale.
	query := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY price %s NULLS LAST, model COLLATE "C" ASC`,
		productColumns, where, direction)
	return query, args
}

// addScalarBounds renders the bounds for an optional scalar column. The NOT
// NULL guard implements the rule that an absent value is excluded whenever a
// bound is set.
func addScalarBounds(wb *WhereBuilder, column string, min, max *float64) {
	if min != nil {
		wb.AddClause(column+" IS NOT NULL AND "+column+" >= $%d", *min)
	}
	if max != nil {
		wb.AddClause(column+" IS NOT NULL AND "+column+" <= $%d", *max)
	}
}

// addOverlapBounds renders the interval overlap test for a range column pair.
// A NULL side is an open bound, so it satisfies the comparison.
func addOverlapBounds(wb *WhereBuilder, column string, min, max *float64) {
	if min != nil {
		wb.AddClause("("+column+"_max IS NULL OR "+column+"_max >= $%d)", *min)
	}
	if max != nil {
		wb.AddClause("("+column+"_min IS NULL OR "+column+"_min <= $%d)", *max)
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// List implements Store.
func (s *Postgres) List(ctx context.Context, f catalog.Filter, sortOrder catalog.Sort) ([]catalog.Product, error) {
	query, args := buildListQuery(f, sortOrder)
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Get implements Store with the same lookup chain as the in-memory index:
// exact id, then lowercase model, then slug. Model and slug collisions
// resolve to the last-loaded row via pos.
func (s *Postgres) Get(ctx context.Context, identifier string) (catalog.Product, error) {
	raw := catalog.NormalizeWhitespace(identifier)

	p, err := s.getOne(ctx, "id = $1", raw)
	if err == nil {
		return p, nil
	}
	if err != ErrNotFound {
		return catalog.Product{}, err
	}

	p, err = s.getOne(ctx, "model <> '' AND LOWER(model) = $1", strings.ToLower(raw))
	if err == nil {
		return p, nil
	}
	if err != ErrNotFound {
		return catalog.Product{}, err
	}

	if slug := catalog.Slugify(raw); slug != "" {
		return s.getOne(ctx, "model_slug = $1", slug)
	}
	return catalog.Product{}, ErrNotFound
}

func (s *Postgres) getOne(ctx context.Context, cond string, arg any) (catalog.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE %s ORDER BY pos DESC LIMIT 1", productColumns, cond)
	rows, err := s.pool.Query(ctx, query, arg)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("get product: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return catalog.Product{}, fmt.Errorf("get product: %w", err)
		}
		return catalog.Product{}, ErrNotFound
	}
	p, err := scanProduct(rows)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("scan product: %w", err)
	}
	return p, nil
}

// Count implements Store.
func (s *Postgres) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func scanProduct(rows pgx.Rows) (catalog.Product, error) {
	var p catalog.Product
	err := rows.Scan(
		&p.ID, &p.Number, &p.Type, &p.Model, &p.Size, &p.Diameter,
		&p.Airflow.Min, &p.Airflow.Max, &p.Airflow.Raw,
		&p.Pressure.Min, &p.Pressure.Max, &p.Pressure.Raw,
		&p.Power, &p.NoiseLevel, &p.Price,
		&p.Raw.Diameter, &p.Raw.Efficiency, &p.Raw.Pressure,
		&p.Raw.Power, &p.Raw.NoiseLevel, &p.Raw.Price,
		&p.Meta.ModelSlug,
	)
	return p, err
}

// LoadResult summarizes one ReplaceAll run for logging and the audit row.
type LoadResult struct {
	LoadID   uuid.UUID
	Inserted int
}

// ReplaceAll atomically replaces the catalog with products, in ingestion
// order, and records a row in catalog_loads. Readers never see a partial
// catalog: the delete and the batched inserts commit together.
func (s *Postgres) ReplaceAll(ctx context.Context, products []catalog.Product, sourceFile string, skipped int) (LoadResult, error) {
	loadID := uuid.New()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return LoadResult{}, fmt.Errorf("begin load tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM products"); err != nil {
		return LoadResult{}, fmt.Errorf("clear products: %w", err)
	}

	batch := &pgx.Batch{}
	for pos, p := range products {
		batch.Queue(`INSERT INTO products (
				id, number, type, model, size, diameter,
				airflow_min, airflow_max, airflow_raw,
				pressure_min, pressure_max, pressure_raw,
				power, noise_level, price,
				raw_diameter, raw_efficiency, raw_pressure, raw_power, raw_noise_level, raw_price,
				model_slug, pos
			) VALUES (
				$1, $2, $3, $4, $5, $6,
				$7, $8, $9, $10, $11, $12,
				$13, $14, $15,
				$16, $17, $18, $19, $20, $21,
				$22, $23
			)
			ON CONFLICT (id) DO UPDATE SET
				number = EXCLUDED.number, type = EXCLUDED.type, model = EXCLUDED.model,
				size = EXCLUDED.size, diameter = EXCLUDED.diameter,
				airflow_min = EXCLUDED.airflow_min, airflow_max = EXCLUDED.airflow_max, airflow_raw = EXCLUDED.airflow_raw,
				pressure_min = EXCLUDED.pressure_min, pressure_max = EXCLUDED.pressure_max, pressure_raw = EXCLUDED.pressure_raw,
				power = EXCLUDED.power, noise_level = EXCLUDED.noise_level, price = EXCLUDED.price,
				raw_diameter = EXCLUDED.raw_diameter, raw_efficiency = EXCLUDED.raw_efficiency,
				raw_pressure = EXCLUDED.raw_pressure, raw_power = EXCLUDED.raw_power,
				raw_noise_level = EXCLUDED.raw_noise_level, raw_price = EXCLUDED.raw_price,
				model_slug = EXCLUDED.model_slug, pos = EXCLUDED.pos`,
			p.ID, p.Number, p.Type, p.Model, p.Size, p.Diameter,
			p.Airflow.Min, p.Airflow.Max, p.Airflow.Raw,
			p.Pressure.Min, p.Pressure.Max, p.Pressure.Raw,
			p.Power, p.NoiseLevel, p.Price,
			p.Raw.Diameter, p.Raw.Efficiency, p.Raw.Pressure,
			p.Raw.Power, p.Raw.NoiseLevel, p.Raw.Price,
			p.Meta.ModelSlug, pos+1,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range products {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return LoadResult{}, fmt.Errorf("insert product: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return LoadResult{}, fmt.Errorf("close batch: %w", err)
	}

	if _, err := tx.Exec(ctx,
		"INSERT INTO catalog_loads (id, source_file, rows_loaded, rows_skipped) VALUES ($1, $2, $3, $4)",
		loadID, sourceFile, len(products), skipped,
	); err != nil {
		return LoadResult{}, fmt.Errorf("record load: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return LoadResult{}, fmt.Errorf("commit load: %w", err)
	}
	return LoadResult{LoadID: loadID, Inserted: len(products)}, nil
}
