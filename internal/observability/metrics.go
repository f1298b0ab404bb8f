// Package observability registers the Prometheus metrics the service emits.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts HTTP requests by route and status class.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_http_requests_total",
			Help: "HTTP requests served, labeled by route and status class",
		},
		[]string{"route", "status"},
	)

	// QueryDuration observes how long a catalog listing query takes,
	// store round trip included.
	QueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_query_duration_seconds",
			Help:    "Duration of catalog listing queries",
			Buckets: prometheus.DefBuckets,
		},
	)

	// ProductsLoaded tracks the number of entries in the current catalog.
	ProductsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_products_loaded",
			Help: "Number of products in the catalog",
		},
	)

	// CacheHits counts listing responses served from Redis.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Listing responses served from the cache",
		},
	)

	// CacheMisses counts listing requests that went to the store.
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_misses_total",
			Help: "Listing requests not found in the cache",
		},
	)
)

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
