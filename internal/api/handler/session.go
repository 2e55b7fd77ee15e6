package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gangai-labs/chatid-gateway/internal/api/response"
	"github.com/gangai-labs/chatid-gateway/internal/domain"
)

// SessionHandler exposes the stream-session registry for inspection
type SessionHandler struct {
	sessions domain.SessionRegistry
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions domain.SessionRegistry) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// List returns all registered stream sessions. With ?active=true only
// sessions still streaming are returned.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions := h.sessions.List()

	if r.URL.Query().Get("active") == "true" {
		active := make([]domain.StreamSession, 0, len(sessions))
		for _, s := range sessions {
			if s.Active {
				active = append(active, s)
			}
		}
		sessions = active
	}

	response.OK(w, map[string]any{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// Get returns one stream session by id
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	sess, ok := h.sessions.Get(sessionID)
	if !ok {
		response.NotFound(w, "Session not found")
		return
	}

	response.OK(w, sess)
}
