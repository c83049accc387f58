package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hplandscaping/booking-platform/internal/bookings"
	"github.com/hplandscaping/booking-platform/internal/http/handlers"
	httpmiddleware "github.com/hplandscaping/booking-platform/internal/http/middleware"
	"github.com/hplandscaping/booking-platform/internal/promo"
	"github.com/hplandscaping/booking-platform/internal/quotes"
	"github.com/hplandscaping/booking-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	Site               *handlers.SiteHandler
	Bookings           *bookings.Handler
	Quotes             *quotes.Handler
	Promo              *promo.Handler
	OpenAPI            http.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// RateLimiter guards the POST endpoints; nil disables limiting.
	RateLimiter *httpmiddleware.RateLimiter
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	site := cfg.Site
	if site == nil {
		site = handlers.NewSiteHandler(nil, nil, cfg.Logger)
	}

	// Read-only endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", site.Health)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		public.Get("/api/services", site.Services)
		public.Get("/api/calendar", site.Calendar)
		if cfg.OpenAPI != nil {
			public.Handle("/api/openapi.json", cfg.OpenAPI)
		}
		if cfg.Bookings != nil {
			public.Get("/api/booking", cfg.Bookings.Availability)
		}
	})

	// Form submissions
	r.Group(func(submit chi.Router) {
		if cfg.RateLimiter != nil {
			submit.Use(cfg.RateLimiter.Middleware)
		}
		if cfg.Bookings != nil {
			submit.Post("/api/booking", cfg.Bookings.Create)
		}
		if cfg.Quotes != nil {
			submit.Post("/api/quote", cfg.Quotes.Create)
		}
		if cfg.Promo != nil {
			submit.Post("/api/exit-intent", cfg.Promo.Evaluate)
		}
	})

	return r
}
