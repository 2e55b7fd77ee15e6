package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/gangai-labs/chatid-gateway/internal/api/response"
	"github.com/gangai-labs/chatid-gateway/internal/domain"
	"github.com/gangai-labs/chatid-gateway/internal/pipe"
)

// StopHandler exposes the stop command over HTTP
type StopHandler struct {
	filter   *pipe.Filter
	validate *validator.Validate
}

// NewStopHandler creates a new stop handler
func NewStopHandler(filter *pipe.Filter) *StopHandler {
	return &StopHandler{
		filter:   filter,
		validate: validator.New(),
	}
}

// Stop cancels an in-flight stream. The response body is always the
// structured stop outcome; the HTTP status reflects the failure class.
func (h *StopHandler) Stop(w http.ResponseWriter, r *http.Request) {
	var req domain.StopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, "session_id is required")
		return
	}

	result := h.filter.Stop(r.Context(), req.SessionID)

	status := http.StatusOK
	switch result.Reason {
	case domain.StopReasonSessionMissing:
		status = http.StatusNotFound
	case domain.StopReasonBackendStatus, domain.StopReasonTransport:
		status = http.StatusBadGateway
	}

	response.Raw(w, status, result)
}
