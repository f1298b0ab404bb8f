package store

import (
	"context"
	"sync/atomic"

	"github.com/ventmash/fancatalog/internal/catalog"
)

// Memory serves queries from an in-memory catalog index. The index is an
// immutable snapshot held behind an atomic pointer: Replace swaps in a fully
// built index so concurrent readers never observe a partial load.
type Memory struct {
	index atomic.Pointer[catalog.Index]
}

// NewMemory builds a memory store over the given entries.
func NewMemory(products []catalog.Product) *Memory {
	m := &Memory{}
	m.index.Store(catalog.BuildIndex(products))
	return m
}

// Replace atomically swaps in a new snapshot built from products. In-flight
// queries keep reading the old snapshot.
func (m *Memory) Replace(products []catalog.Product) {
	m.index.Store(catalog.BuildIndex(products))
}

// List implements Store using the pure query engine.
func (m *Memory) List(_ context.Context, f catalog.Filter, s catalog.Sort) ([]catalog.Product, error) {
	return catalog.Apply(m.index.Load().Products(), f, s), nil
}

// Get implements Store via the index lookup chain.
func (m *Memory) Get(_ context.Context, identifier string) (catalog.Product, error) {
	p, ok := m.index.Load().Lookup(identifier)
	if !ok {
		return catalog.Product{}, ErrNotFound
	}
	return p, nil
}

// Count implements Store.
func (m *Memory) Count(_ context.Context) (int, error) {
	return m.index.Load().Len(), nil
}
