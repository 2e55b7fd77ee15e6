package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/gangai-labs/chatid-gateway/internal/api/handler"
	customMiddleware "github.com/gangai-labs/chatid-gateway/internal/api/middleware"
	"github.com/gangai-labs/chatid-gateway/internal/config"
	"github.com/gangai-labs/chatid-gateway/internal/domain"
	"github.com/gangai-labs/chatid-gateway/internal/pipe"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, filter *pipe.Filter, conversations domain.ConversationStore, sessions domain.SessionRegistry, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Identity passthrough only when a secret is configured
	if cfg.Auth.JWTSecret != "" {
		r.Use(customMiddleware.Identity(cfg.Auth.JWTSecret))
	}

	// Initialize handlers
	pipeHandler := handler.NewPipeHandler(filter)
	stopHandler := handler.NewStopHandler(filter)
	sessionHandler := handler.NewSessionHandler(sessions)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/info", handler.Info(cfg, conversations))

		// Body filters
		r.Post("/inlet", pipeHandler.Inlet)
		r.Post("/outlet", pipeHandler.Outlet)

		// Stop command
		r.Post("/stop", stopHandler.Stop)

		// Session registry inspection
		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", sessionHandler.List)
			r.Get("/{sessionID}", sessionHandler.Get)
		})
	})

	return r
}
