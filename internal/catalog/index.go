package catalog

import "strings"

// Index is an immutable snapshot of the catalog with three lookup maps over
// the same entries. Build it once per load; swap the whole value to reload.
type Index struct {
	products []Product
	byID     map[string]Product
	byModel  map[string]Product
	bySlug   map[string]Product
}

// BuildIndex indexes entries in ingestion order. On duplicate ids, lowercased
// models or slugs the later row wins; source data is taken as-is.
func BuildIndex(products []Product) *Index {
	idx := &Index{
		products: products,
		byID:     make(map[string]Product, len(products)),
		byModel:  make(map[string]Product, len(products)),
		bySlug:   make(map[string]Product, len(products)),
	}
	for _, p := range products {
		idx.byID[p.ID] = p
		if p.Model != "" {
			idx.byModel[strings.ToLower(p.Model)] = p
		}
		if p.Meta.ModelSlug != "" {
			idx.bySlug[p.Meta.ModelSlug] = p
		}
	}
	return idx
}

// Products returns the indexed entries in ingestion order. Callers must not
// mutate the returned slice.
func (idx *Index) Products() []Product { return idx.products }

// Len reports the number of indexed entries.
func (idx *Index) Len() int { return len(idx.products) }

// ByID looks up an entry by its exact id.
func (idx *Index) ByID(id string) (Product, bool) {
	p, ok := idx.byID[id]
	return p, ok
}

// ByModel looks up an entry by lowercased model name.
func (idx *Index) ByModel(model string) (Product, bool) {
	p, ok := idx.byModel[model]
	return p, ok
}

// BySlug looks up an entry by model slug.
func (idx *Index) BySlug(slug string) (Product, bool) {
	p, ok := idx.bySlug[slug]
	return p, ok
}

// Lookup resolves a user-supplied identifier: exact id first, then lowercase
// model, then the slug of the identifier itself.
func (idx *Index) Lookup(identifier string) (Product, bool) {
	raw := NormalizeWhitespace(identifier)
	if p, ok := idx.ByID(raw); ok {
		return p, true
	}
	if p, ok := idx.ByModel(strings.ToLower(raw)); ok {
		return p, true
	}
	return idx.BySlug(Slugify(raw))
}
