// Package web provides the HTTP server and handlers for the fan catalog API
// and its static product pages.
package web

import (
	"context"
	"embed"
	"io/fs"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ventmash/fancatalog/internal/cache"
	"github.com/ventmash/fancatalog/internal/config"
	"github.com/ventmash/fancatalog/internal/observability"
	"github.com/ventmash/fancatalog/internal/store"
)

//go:embed static
var staticFiles embed.FS

// Server is the HTTP server for the catalog service.
type Server struct {
	store  store.Store
	cache  *cache.Listing
	cfg    *config.Config
	router *chi.Mux
	server *http.Server
}

// NewServer creates a Server over the given store. cache may be nil to
// disable response caching.
func NewServer(st store.Store, listingCache *cache.Listing, cfg *config.Config) *Server {
	s := &Server{
		store:  st,
		cache:  listingCache,
		cfg:    cfg,
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	s.router.Use(securityHeaders)

	if s.cfg.Metrics.Enabled {
		s.router.Use(requestMetrics)
	}

	if s.cfg.Rate.Enabled {
		limiter := newRateLimiter(s.cfg.Rate.RequestsPerMinute)
		s.router.Use(limiter.middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// API routes
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/products", s.handleListProducts)
		r.Get("/products/export.csv", s.handleExportCSV)
		r.Get("/products/export.xlsx", s.handleExportXLSX)
		r.Get("/products/{id}", s.handleGetProduct)
		r.Get("/health", s.handleHealth)
	})

	if s.cfg.Metrics.Enabled {
		s.router.Handle("/metrics", observability.Handler())
	}

	// Static pages (index.html, product.html, style.css, script.js)
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatal(err)
	}
	s.router.Handle("/*", http.FileServer(http.FS(staticFS)))
}

// Router exposes the handler tree, mainly for tests.
func (s *Server) Router() http.Handler { return s.router }

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
