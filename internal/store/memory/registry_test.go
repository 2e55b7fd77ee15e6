package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gangai-labs/chatid-gateway/internal/domain"
)

func TestSessionRegistry(t *testing.T) {
	r, err := NewSessionRegistry(16)
	require.NoError(t, err)

	r.Put(domain.StreamSession{
		SessionID: "s1",
		ChatID:    "c1",
		StartTime: time.Now(),
		Active:    true,
	})

	t.Run("get returns a copy", func(t *testing.T) {
		sess, ok := r.Get("s1")
		require.True(t, ok)
		sess.Active = false

		again, _ := r.Get("s1")
		assert.True(t, again.Active)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, ok := r.Get("nope")
		assert.False(t, ok)
		assert.False(t, r.MarkDone("nope", time.Now()))
		assert.False(t, r.MarkStopped("nope", time.Now()))
	})

	t.Run("mark done", func(t *testing.T) {
		end := time.Now()
		require.True(t, r.MarkDone("s1", end))

		sess, _ := r.Get("s1")
		assert.False(t, sess.Active)
		require.NotNil(t, sess.EndTime)
		assert.Equal(t, end, *sess.EndTime)
		assert.False(t, sess.StoppedByUser)
	})

	t.Run("overwrite discards end-of-stream metadata", func(t *testing.T) {
		r.Put(domain.StreamSession{SessionID: "s1", ChatID: "c1", StartTime: time.Now(), Active: true})

		sess, _ := r.Get("s1")
		assert.True(t, sess.Active)
		assert.Nil(t, sess.EndTime)
	})

	t.Run("mark stopped", func(t *testing.T) {
		stop := time.Now()
		require.True(t, r.MarkStopped("s1", stop))

		sess, _ := r.Get("s1")
		assert.False(t, sess.Active)
		assert.True(t, sess.StoppedByUser)
		require.NotNil(t, sess.StopTime)
		assert.Equal(t, stop, *sess.StopTime)
	})
}

func TestSessionRegistry_List(t *testing.T) {
	r, err := NewSessionRegistry(16)
	require.NoError(t, err)

	for _, id := range []string{"a", "b", "c"} {
		r.Put(domain.StreamSession{SessionID: id, ChatID: "c-" + id, Active: true})
	}

	sessions := r.List()
	require.Len(t, sessions, 3)
	assert.Equal(t, "a", sessions[0].SessionID)
	assert.Equal(t, "c", sessions[2].SessionID)
}

func TestSessionRegistry_Bounded(t *testing.T) {
	r, err := NewSessionRegistry(2)
	require.NoError(t, err)

	r.Put(domain.StreamSession{SessionID: "s1"})
	r.Put(domain.StreamSession{SessionID: "s2"})
	r.Put(domain.StreamSession{SessionID: "s3"})

	_, ok := r.Get("s1")
	assert.False(t, ok, "oldest session evicted at capacity")
	assert.Len(t, r.List(), 2)
}
