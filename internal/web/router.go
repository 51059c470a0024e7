package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ramonehamilton/arc-damage-tracker/internal/version"
	"github.com/ramonehamilton/arc-damage-tracker/internal/web/response"
)

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	// Request ID for tracing
	s.router.Use(middleware.RequestID)

	// Real IP detection, must precede the per-IP limiter
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(middleware.Logger)

	// Panic recovery
	s.router.Use(middleware.Recoverer)

	// Request timeout
	s.router.Use(middleware.Timeout(s.requestTimeout))

	// Per-IP rate limiting
	s.router.Use(s.limiter.Middleware)
}

// setupRoutes configures pages, static assets, and the JSON API.
func (s *Server) setupRoutes() {
	// Health check endpoint (no versioning)
	s.router.Get("/health", s.healthCheck)

	// Pages
	s.router.Get("/", s.indexPage)
	s.router.Get("/arc/{slug}", s.arcDetailPage)

	// Embedded stylesheet assets
	s.router.Handle("/static/*", http.FileServer(http.FS(staticFS)))

	// JSON API; CORS applies here only, pages are same-origin
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(s.corsOptions()))

		r.Get("/arcs", s.listArcs)
		r.Get("/arcs/{slug}", s.getArc)
		r.Get("/version", s.getVersion)
	})
}

// corsOptions derives the CORS policy from configuration. An empty origin
// list means any origin may read the API.
func (s *Server) corsOptions() cors.Options {
	origins := s.allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}
}

// healthCheck returns server health status.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "arc-damage-tracker",
		"version": version.GetVersion(),
	})
}
