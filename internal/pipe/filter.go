package pipe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/gangai-labs/chatid-gateway/internal/backend"
	"github.com/gangai-labs/chatid-gateway/internal/domain"
)

// Stopper forwards a cancellation signal for a session to the generation
// backend.
type Stopper interface {
	Stop(ctx context.Context, sessionID, chatID string) error
}

// Filter rewrites chat request bodies on the way to the generation backend
// and inspects response bodies on the way out, keeping the conversation
// identifier stable across requests and tracking live sessions for stop
// commands.
type Filter struct {
	conversations domain.ConversationStore
	sessions      domain.SessionRegistry
	stopper       Stopper
	log           zerolog.Logger
}

// NewFilter creates a new body filter
func NewFilter(conversations domain.ConversationStore, sessions domain.SessionRegistry, stopper Stopper, log zerolog.Logger) *Filter {
	return &Filter{
		conversations: conversations,
		sessions:      sessions,
		stopper:       stopper,
		log:           log,
	}
}

// Inlet assigns chat_id and session_id on an inbound request body and
// registers a stream session for it. Every other byte of the body passes
// through untouched. Inlet has no failure path: missing or malformed
// fields degrade to the empty fingerprint or generated ids.
func (f *Filter) Inlet(body []byte) []byte {
	fingerprint := Fingerprint(body)
	clientChatID := gjson.GetBytes(body, "chat_id").String()

	chatID, created := f.conversations.Resolve(fingerprint, clientChatID)

	sessionID := gjson.GetBytes(body, "session_id").String()
	if sessionID == "" {
		sessionID = "session-" + uuid.NewString()
	}

	f.sessions.Put(domain.StreamSession{
		SessionID: sessionID,
		ChatID:    chatID,
		StartTime: time.Now(),
		Active:    true,
	})

	f.log.Debug().
		Str("chat_id", chatID).
		Str("session_id", sessionID).
		Bool("new_conversation", created).
		Msg("inlet resolved")

	out, err := sjson.SetBytes(body, "chat_id", chatID)
	if err != nil {
		f.log.Warn().Err(err).Msg("could not write chat_id into body")
		return body
	}
	out, err = sjson.SetBytes(out, "session_id", sessionID)
	if err != nil {
		f.log.Warn().Err(err).Msg("could not write session_id into body")
		return body
	}
	return out
}

// Outlet marks a session inactive once its response body signals
// completion, via a done flag or a stop_reason value. The body is returned
// unmodified either way.
func (f *Filter) Outlet(body []byte) []byte {
	sessionID := gjson.GetBytes(body, "session_id").String()
	if sessionID == "" {
		return body
	}

	done := gjson.GetBytes(body, "done").Bool()
	if !done && !truthy(gjson.GetBytes(body, "stop_reason")) {
		return body
	}

	if f.sessions.MarkDone(sessionID, time.Now()) {
		f.log.Debug().Str("session_id", sessionID).Msg("stream completed")
	}
	return body
}

// Stop forwards a best-effort cancellation to the backend for the given
// session. The backend is only signalled, never awaited: a success outcome
// means the backend acknowledged the request, not that generation halted.
// All failure modes surface as a structured result.
func (f *Filter) Stop(ctx context.Context, sessionID string) domain.StopResult {
	sess, ok := f.sessions.Get(sessionID)
	if !ok {
		return domain.StopError(domain.StopReasonSessionMissing, "Session not found")
	}

	if err := f.stopper.Stop(ctx, sessionID, sess.ChatID); err != nil {
		var statusErr *backend.StatusError
		if errors.As(err, &statusErr) {
			f.log.Warn().
				Str("session_id", sessionID).
				Int("status", statusErr.StatusCode).
				Msg("backend rejected stop request")
			return domain.StopError(domain.StopReasonBackendStatus,
				fmt.Sprintf("Backend returned %d", statusErr.StatusCode))
		}

		f.log.Warn().Err(err).Str("session_id", sessionID).Msg("stop request failed")
		return domain.StopError(domain.StopReasonTransport, "Failed to reach backend: "+err.Error())
	}

	f.sessions.MarkStopped(sessionID, time.Now())

	f.log.Info().
		Str("session_id", sessionID).
		Str("chat_id", sess.ChatID).
		Msg("stream stopped by user")

	return domain.StopSuccess("Stream stopped")
}

// truthy reports whether a JSON value would end a stream when present as
// stop_reason: null, false, zero and the empty string do not count.
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null:
		return false
	case gjson.False:
		return false
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	case gjson.True, gjson.JSON:
		return v.Exists()
	default:
		return false
	}
}
