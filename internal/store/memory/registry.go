package memory

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gangai-labs/chatid-gateway/internal/domain"
)

// SessionRegistry tracks live stream sessions in memory. Entries are never
// deleted explicitly; the registry is bounded and evicts the
// least-recently-used session once capacity is reached.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions *lru.Cache[string, *domain.StreamSession]
}

// NewSessionRegistry creates a registry holding at most capacity sessions.
func NewSessionRegistry(capacity int) (*SessionRegistry, error) {
	cache, err := lru.New[string, *domain.StreamSession](capacity)
	if err != nil {
		return nil, err
	}
	return &SessionRegistry{sessions: cache}, nil
}

// Put registers or overwrites the entry for session.SessionID. Overwriting
// a reused session id discards its previous end-of-stream metadata.
func (r *SessionRegistry) Put(session domain.StreamSession) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions.Add(session.SessionID, &session)
}

// Get returns a copy of the entry for sessionID.
func (r *SessionRegistry) Get(sessionID string) (domain.StreamSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.sessions.Get(sessionID)
	if !ok {
		return domain.StreamSession{}, false
	}
	return *sess, true
}

// MarkDone flags the session inactive with the given end time.
func (r *SessionRegistry) MarkDone(sessionID string, endTime time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions.Get(sessionID)
	if !ok {
		return false
	}
	sess.Active = false
	sess.EndTime = &endTime
	return true
}

// MarkStopped flags the session inactive as stopped by the user.
func (r *SessionRegistry) MarkStopped(sessionID string, stopTime time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions.Get(sessionID)
	if !ok {
		return false
	}
	sess.Active = false
	sess.StoppedByUser = true
	sess.StopTime = &stopTime
	return true
}

// List returns copies of all registered sessions, oldest first.
func (r *SessionRegistry) List() []domain.StreamSession {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := r.sessions.Keys()
	out := make([]domain.StreamSession, 0, len(keys))
	for _, k := range keys {
		if sess, ok := r.sessions.Peek(k); ok {
			out = append(out, *sess)
		}
	}
	return out
}
