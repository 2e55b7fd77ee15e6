package domain

// MessageRole represents the sender of a chat message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// Message is one entry of a request's message list
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// StopRequest is the inbound payload of a stop command
type StopRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

// Stop outcome statuses
const (
	StopStatusSuccess = "success"
	StopStatusError   = "error"
)

// StopReason classifies why a stop command failed, for callers that need
// more than the user-facing message (e.g. HTTP status mapping)
type StopReason string

const (
	StopReasonNone           StopReason = ""
	StopReasonSessionMissing StopReason = "session_missing"
	StopReasonBackendStatus  StopReason = "backend_status"
	StopReasonTransport      StopReason = "transport"
)

// StopResult is the structured outcome of a stop command. Stop never
// raises; every failure mode is reported through this value.
type StopResult struct {
	Status  string     `json:"status"`
	Message string     `json:"message"`
	Reason  StopReason `json:"-"`
}

// StopSuccess builds a successful stop outcome
func StopSuccess(message string) StopResult {
	return StopResult{Status: StopStatusSuccess, Message: message}
}

// StopError builds a failed stop outcome
func StopError(reason StopReason, message string) StopResult {
	return StopResult{Status: StopStatusError, Message: message, Reason: reason}
}
