package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationStore_Resolve(t *testing.T) {
	s, err := NewConversationStore(16)
	require.NoError(t, err)

	t.Run("first sight issues a new id", func(t *testing.T) {
		chatID, created := s.Resolve("fp-1", "")
		assert.True(t, created)
		assert.NotEmpty(t, chatID)
		assert.True(t, s.Issued(chatID))
	})

	t.Run("same fingerprint reuses the id", func(t *testing.T) {
		first, _ := s.Resolve("fp-2", "")
		second, created := s.Resolve("fp-2", "")
		assert.False(t, created)
		assert.Equal(t, first, second)
	})

	t.Run("issued client id is trusted over content", func(t *testing.T) {
		issued, _ := s.Resolve("fp-3", "")
		chatID, created := s.Resolve("fp-other", issued)
		assert.False(t, created)
		assert.Equal(t, issued, chatID)
	})

	t.Run("unissued client id loses to content", func(t *testing.T) {
		known, _ := s.Resolve("fp-4", "")
		chatID, created := s.Resolve("fp-4", "never-issued")
		assert.False(t, created)
		assert.Equal(t, known, chatID)
	})

	t.Run("assignment never changes once made", func(t *testing.T) {
		first, _ := s.Resolve("fp-5", "")
		for i := 0; i < 10; i++ {
			got, _ := s.Resolve("fp-5", "stale-token")
			assert.Equal(t, first, got)
		}
	})
}

func TestConversationStore_Eviction(t *testing.T) {
	s, err := NewConversationStore(2)
	require.NoError(t, err)

	id1, _ := s.Resolve("fp-1", "")
	s.Resolve("fp-2", "")
	s.Resolve("fp-3", "") // evicts fp-1

	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Issued(id1), "evicted chat ids are forgotten")

	// fp-1 is now a fresh conversation again
	id1b, created := s.Resolve("fp-1", "")
	assert.True(t, created)
	assert.NotEqual(t, id1, id1b)
}

func TestConversationStore_ConcurrentFirstInsert(t *testing.T) {
	s, err := NewConversationStore(16)
	require.NoError(t, err)

	const goroutines = 32
	ids := make([]string, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], _ = s.Resolve("fp-race", "")
		}(i)
	}
	wg.Wait()

	for _, id := range ids[1:] {
		assert.Equal(t, ids[0], id, "racing first requests must resolve to one id")
	}
	assert.Equal(t, 1, s.Len())
}
