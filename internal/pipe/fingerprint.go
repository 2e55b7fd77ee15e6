package pipe

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/tidwall/gjson"

	"github.com/gangai-labs/chatid-gateway/internal/domain"
)

// Fingerprint identifies a conversation by the content of the first
// user-role message in the request body. Bodies with no user message all
// share the empty-content digest.
func Fingerprint(body []byte) string {
	content := ""
	for _, msg := range gjson.GetBytes(body, "messages").Array() {
		if msg.Get("role").String() == string(domain.RoleUser) {
			content = msg.Get("content").String()
			break
		}
	}

	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
