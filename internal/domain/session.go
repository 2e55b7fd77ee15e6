package domain

import "time"

// StreamSession tracks one in-flight generation attempt
type StreamSession struct {
	SessionID     string     `json:"session_id"`
	ChatID        string     `json:"chat_id"`
	StartTime     time.Time  `json:"start_time"`
	Active        bool       `json:"active"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	StoppedByUser bool       `json:"stopped_by_user,omitempty"`
	StopTime      *time.Time `json:"stop_time,omitempty"`
}

// SessionRegistry defines the interface for live-stream session tracking
type SessionRegistry interface {
	// Put registers or overwrites the entry for session.SessionID.
	Put(session StreamSession)
	// Get returns a copy of the entry for sessionID.
	Get(sessionID string) (StreamSession, bool)
	// MarkDone flags the session inactive with the given end time.
	// Reports whether the session was known.
	MarkDone(sessionID string, endTime time.Time) bool
	// MarkStopped flags the session inactive as stopped by the user.
	// Reports whether the session was known.
	MarkStopped(sessionID string, stopTime time.Time) bool
	// List returns copies of all registered sessions.
	List() []StreamSession
}

// ConversationStore defines the interface for fingerprint-to-chat-id
// resolution
type ConversationStore interface {
	// Resolve decides the chat id for a request given its conversation
	// fingerprint and an optional client-supplied chat id. Reports whether
	// a fresh id was issued.
	Resolve(fingerprint, clientChatID string) (chatID string, created bool)
	// Issued reports whether chatID was previously issued by this store.
	Issued(chatID string) bool
	// Len returns the number of resident conversations.
	Len() int
}
