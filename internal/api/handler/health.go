package handler

import (
	"net/http"

	"github.com/gangai-labs/chatid-gateway/internal/api/response"
	"github.com/gangai-labs/chatid-gateway/internal/config"
	"github.com/gangai-labs/chatid-gateway/internal/domain"
)

// HealthCheck returns a simple health check response
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status": "ok",
	})
}

// Info returns the filter's valves and current store occupancy
func Info(cfg *config.Config, conversations domain.ConversationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]any{
			"priority":      cfg.Pipe.Priority,
			"backend_url":   cfg.Backend.BaseURL,
			"stop_endpoint": cfg.Backend.StopPath,
			"conversations": conversations.Len(),
		})
	}
}
