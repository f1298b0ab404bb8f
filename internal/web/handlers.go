package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ventmash/fancatalog/internal/cache"
	"github.com/ventmash/fancatalog/internal/catalog"
	"github.com/ventmash/fancatalog/internal/logging"
	"github.com/ventmash/fancatalog/internal/observability"
	"github.com/ventmash/fancatalog/internal/store"
)

// filterFromQuery maps request parameters onto the engine's filter and sort.
// Numeric parameters go through the same loose parser as the source data, so
// "12,5" works in the URL as well.
func filterFromQuery(q url.Values) (catalog.Filter, catalog.Sort) {
	f := catalog.Filter{
		Query:    catalog.NormalizeWhitespace(q.Get("q")),
		Type:     catalog.NormalizeWhitespace(q.Get("type")),
		Diameter: catalog.ParseNumber(q.Get("diameter")),

		MinPrice:    catalog.ParseNumber(q.Get("minPrice")),
		MaxPrice:    catalog.ParseNumber(q.Get("maxPrice")),
		MinPower:    catalog.ParseNumber(q.Get("minPower")),
		MaxPower:    catalog.ParseNumber(q.Get("maxPower")),
		MinNoise:    catalog.ParseNumber(q.Get("minNoise")),
		MaxNoise:    catalog.ParseNumber(q.Get("maxNoise")),
		MinDiameter: catalog.ParseNumber(q.Get("minDiameter")),
		MaxDiameter: catalog.ParseNumber(q.Get("maxDiameter")),

		MinAirflow:  catalog.ParseNumber(q.Get("minAirflow")),
		MaxAirflow:  catalog.ParseNumber(q.Get("maxAirflow")),
		MinPressure: catalog.ParseNumber(q.Get("minPressure")),
		MaxPressure: catalog.ParseNumber(q.Get("maxPressure")),
	}
	return f, catalog.ParseSort(q.Get("sort"))
}

// handleListProducts serves GET /api/products: the filtered, sorted catalog
// as a JSON array. Responses are cached in Redis when a cache is configured.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var key string
	if s.cache != nil {
		key = cache.Key(r.URL.Query())
		if body, ok := s.cache.Get(ctx, key); ok {
			observability.CacheHits.Inc()
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
			return
		}
		observability.CacheMisses.Inc()
	}

	filter, sortOrder := filterFromQuery(r.URL.Query())

	start := time.Now()
	products, err := s.store.List(ctx, filter, sortOrder)
	observability.QueryDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if products == nil {
		products = []catalog.Product{}
	}

	body, err := json.Marshal(products)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, body); err != nil {
			logging.FromContext(ctx).Warn("caching listing failed", "error", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// handleGetProduct serves GET /api/products/{id}. The identifier resolves
// through the lookup chain: exact id, lowercase model, then slug.
func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "id")

	p, err := s.store.Get(r.Context(), identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.respondError(w, r, err, http.StatusNotFound)
		} else {
			s.respondError(w, r, err, http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(p); err != nil {
		logging.FromContext(r.Context()).Error("encoding product failed", "error", err)
	}
}

// handleHealth serves GET /api/health with the product count.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	n, err := s.store.Count(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"ok":       true,
		"products": n,
	})
}
