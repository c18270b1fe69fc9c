package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpmiddleware "github.com/souravdey/hospiagent-notify/internal/http/middleware"
	"github.com/souravdey/hospiagent-notify/internal/insights"
	"github.com/souravdey/hospiagent-notify/internal/notification"
	"github.com/souravdey/hospiagent-notify/internal/reminder"
	"github.com/souravdey/hospiagent-notify/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	ReminderHandler     *reminder.Handler
	NotificationHandler *notification.Handler
	InsightsHandler     *insights.Handler
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string

	// Per-IP rate limit for the API routes; zero disables limiting.
	RateLimitPerSecond float64
	RateLimitBurst     int
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

	// Public endpoints (health check, metrics)
	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// API routes
	r.Route("/api/v1", func(api chi.Router) {
		if cfg.RateLimitPerSecond > 0 {
			api.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
		}
		if cfg.ReminderHandler != nil {
			api.Post("/reminders", cfg.ReminderHandler.Schedule)
		}
		if cfg.NotificationHandler != nil {
			api.Post("/notifications", cfg.NotificationHandler.Send)
		}
		if cfg.InsightsHandler != nil {
			api.Post("/insights", cfg.InsightsHandler.Generate)
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
