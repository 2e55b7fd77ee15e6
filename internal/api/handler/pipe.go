package handler

import (
	"io"
	"net/http"

	"github.com/gangai-labs/chatid-gateway/internal/api/response"
	"github.com/gangai-labs/chatid-gateway/internal/pipe"
)

// PipeHandler exposes the inlet and outlet body filters over HTTP
type PipeHandler struct {
	filter *pipe.Filter
}

// NewPipeHandler creates a new pipe handler
func NewPipeHandler(filter *pipe.Filter) *PipeHandler {
	return &PipeHandler{filter: filter}
}

// Inlet rewrites an inbound chat request body, assigning chat_id and
// session_id, and returns the rewritten body as-is for passthrough to the
// generation backend.
func (h *PipeHandler) Inlet(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.BadRequest(w, "failed to read request body")
		return
	}

	out := h.filter.Inlet(body)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// Outlet inspects an outbound response body for stream completion and
// returns it unchanged.
func (h *PipeHandler) Outlet(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.BadRequest(w, "failed to read request body")
		return
	}

	out := h.filter.Outlet(body)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}
