package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/gangai-labs/chatid-gateway/internal/api"
	"github.com/gangai-labs/chatid-gateway/internal/backend"
	"github.com/gangai-labs/chatid-gateway/internal/config"
	"github.com/gangai-labs/chatid-gateway/internal/logging"
	"github.com/gangai-labs/chatid-gateway/internal/pipe"
	"github.com/gangai-labs/chatid-gateway/internal/store/memory"
)

func main() {
	// Load .env file - try multiple locations
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	log, err := logging.New(cfg.Logging)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to set up logger")
	}

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Int("priority", cfg.Pipe.Priority).
		Str("stop_url", cfg.Backend.StopURL()).
		Msg("Starting chat-id gateway")

	// Initialize stores
	conversations, err := memory.NewConversationStore(cfg.Store.MaxConversations)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create conversation store")
	}
	sessions, err := memory.NewSessionRegistry(cfg.Store.MaxSessions)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create session registry")
	}

	// Initialize stop client and filter
	stopClient := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.StopPath, cfg.Backend.StopTimeout)
	filter := pipe.NewFilter(conversations, sessions, stopClient, log)

	// Initialize router
	router := api.NewRouter(cfg, filter, conversations, sessions, log)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
