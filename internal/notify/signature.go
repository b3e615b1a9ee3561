package notify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// SignaturePrefix names the HMAC algorithm in the signature header value
const SignaturePrefix = "sha256="

// Sign computes the HMAC-SHA256 signature of a webhook body.
// The signed message is "{timestamp}.{event_id}.{body}" so receivers can reject
// replays by timestamp, deduplicate by event id, and verify the body.
func Sign(secret string, timestamp int64, eventID string, body []byte) string {
	message := fmt.Sprintf("%d.%s.%s", timestamp, eventID, string(body))

	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(message))

	return SignaturePrefix + hex.EncodeToString(h.Sum(nil))
}

// Verify reports whether signature matches the body
func Verify(secret string, timestamp int64, eventID string, body []byte, signature string) bool {
	expected := Sign(secret, timestamp, eventID, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}
