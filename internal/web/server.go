// Package web is the HTTP boundary: routing, page rendering, and the
// read-only JSON API. Handlers load the document from a Store, hand it to
// the viewmodel projections, and translate the two possible failures
// (load error, unknown slug) into 500 and 404.
package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/arc-damage-tracker/internal/arcdata"
	"github.com/ramonehamilton/arc-damage-tracker/internal/config"
)

// Server serves the tracker pages and API.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	port       int

	store     arcdata.Store
	templates *Templates
	limiter   *ipLimiter

	requestTimeout time.Duration
	allowedOrigins []string
}

// NewServer wires the router, middleware, templates, and routes. The
// store decides eager vs lazy loading; the server never parses the
// dataset itself.
func NewServer(cfg *config.Config, store arcdata.Store) (*Server, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	timeout, err := cfg.GetRequestTimeout()
	if err != nil {
		return nil, fmt.Errorf("request timeout: %w", err)
	}

	templates, err := ParseTemplates()
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	s := &Server{
		router:         chi.NewRouter(),
		port:           cfg.Server.Port,
		store:          store,
		templates:      templates,
		limiter:        newIPLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst),
		requestTimeout: timeout,
		allowedOrigins: cfg.Server.AllowedOrigins,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// Router returns the configured handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Port returns the port the server is configured to listen on.
func (s *Server) Port() int {
	return s.port
}

// Start starts the HTTP server in a goroutine.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("[Web] Server starting on port %d", s.port)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[Web] Server error: %v", err)
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	log.Println("[Web] Shutting down server...")
	return s.httpServer.Shutdown(ctx)
}
