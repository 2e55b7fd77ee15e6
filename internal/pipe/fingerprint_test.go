package pipe

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestFingerprint(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "first user message",
			body: `{"messages":[{"role":"user","content":"hi"}]}`,
			want: sha256Hex("hi"),
		},
		{
			name: "skips system message",
			body: `{"messages":[{"role":"system","content":"be nice"},{"role":"user","content":"hi"}]}`,
			want: sha256Hex("hi"),
		},
		{
			name: "only first user message counts",
			body: `{"messages":[{"role":"user","content":"hi"},{"role":"assistant","content":"hello"},{"role":"user","content":"more"}]}`,
			want: sha256Hex("hi"),
		},
		{
			name: "user message without content",
			body: `{"messages":[{"role":"user"}]}`,
			want: sha256Hex(""),
		},
		{
			name: "no user message",
			body: `{"messages":[{"role":"assistant","content":"hello"}]}`,
			want: sha256Hex(""),
		},
		{
			name: "no messages",
			body: `{}`,
			want: sha256Hex(""),
		},
		{
			name: "malformed body",
			body: `not json at all`,
			want: sha256Hex(""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fingerprint([]byte(tt.body)))
		})
	}
}

func TestFingerprint_DistinctContent(t *testing.T) {
	a := Fingerprint([]byte(`{"messages":[{"role":"user","content":"hi"}]}`))
	b := Fingerprint([]byte(`{"messages":[{"role":"user","content":"bye"}]}`))
	assert.NotEqual(t, a, b)
}
