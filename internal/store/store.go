// Package store provides the persistence collaborators behind the catalog
// API. Two implementations share one contract: an in-memory index built from
// the CSV at startup, and a Postgres-backed store loaded by cmd/loadcsv. Both
// must apply identical filter and sort semantics.
package store

import (
	"context"
	"errors"

	"github.com/ventmash/fancatalog/internal/catalog"
)

// ErrNotFound signals a lookup miss, as opposed to a malformed request. The
// web layer maps it to a 404.
var ErrNotFound = errors.New("product not found")

// Store is the read-side contract over the catalog.
type Store interface {
	// List returns every entry matching the filter, in the requested order.
	List(ctx context.Context, f catalog.Filter, s catalog.Sort) ([]catalog.Product, error)

	// Get resolves an identifier via the lookup chain (exact id, lowercase
	// model, slug) and returns ErrNotFound on a miss.
	Get(ctx context.Context, identifier string) (catalog.Product, error)

	// Count reports the number of entries in the catalog.
	Count(ctx context.Context) (int, error)
}
