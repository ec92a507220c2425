package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/alex-monroe/six-picks-stream-finder/internal/api/handler"
	"github.com/alex-monroe/six-picks-stream-finder/internal/config"
	"github.com/alex-monroe/six-picks-stream-finder/internal/metrics"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(deps handler.Deps, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metrics.HTTPMiddleware)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS. The browser extension calls from a chrome-extension:// origin.
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control", "X-Run-ID"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag", "Last-Modified"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	if deps.Config == nil {
		deps.Config = cfg
	}
	h := handler.New(deps)

	// --- Routes ---

	r.Get("/", h.Root)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	r.Route("/api/v1", func(r chi.Router) {
		// Workflow messages
		r.Post("/context", h.SetContext)
		r.Post("/players", h.ProcessPlayers)
		r.Post("/extraction-failed", h.ExtractionFailed)
		r.Post("/generate", h.Generate)

		// Saved base config
		r.Get("/base-config", h.GetBaseConfig)
		r.Put("/base-config", h.PutBaseConfig)
		r.Delete("/base-config", h.DeleteBaseConfig)

		// Identifier lookup
		r.Get("/lookup", h.Lookup)

		// Notifications
		r.Get("/events", h.Events)
	})

	return r
}
