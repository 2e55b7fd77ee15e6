package memory

import (
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ConversationStore maps conversation fingerprints to issued chat ids.
// The map is bounded: least-recently-used fingerprints are evicted once
// capacity is reached, together with their reverse-index entries.
type ConversationStore struct {
	mu     sync.Mutex
	byFp   *lru.Cache[string, string]
	issued map[string]string // chat id -> fingerprint, kept in sync with byFp
}

// NewConversationStore creates a conversation store holding at most
// capacity fingerprints.
func NewConversationStore(capacity int) (*ConversationStore, error) {
	s := &ConversationStore{issued: make(map[string]string)}

	cache, err := lru.NewWithEvict(capacity, func(_ string, chatID string) {
		delete(s.issued, chatID)
	})
	if err != nil {
		return nil, err
	}
	s.byFp = cache

	return s, nil
}

// Resolve decides the chat id for a request. A client-supplied chat id is
// trusted only if this store issued it; otherwise the fingerprint decides,
// issuing a fresh id on first sight. The whole decision runs under one
// lock, so two racing first requests for the same fingerprint resolve to
// the same id.
func (s *ConversationStore) Resolve(fingerprint, clientChatID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if clientChatID != "" {
		if fp, ok := s.issued[clientChatID]; ok {
			s.byFp.Get(fp) // refresh recency
			return clientChatID, false
		}
	}

	if chatID, ok := s.byFp.Get(fingerprint); ok {
		return chatID, false
	}

	chatID := uuid.NewString()
	s.byFp.Add(fingerprint, chatID)
	s.issued[chatID] = fingerprint

	return chatID, true
}

// Issued reports whether chatID was previously issued by this store and
// is still resident.
func (s *ConversationStore) Issued(chatID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.issued[chatID]
	return ok
}

// Len returns the number of resident conversations.
func (s *ConversationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.byFp.Len()
}
