package audit

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// EventSigner produces tamper-evident HMAC-SHA256 signatures for audit
// log entries. The same secret must be used to sign and to verify.
type EventSigner struct {
	secretKey []byte
}

func NewEventSigner(secretKey string) *EventSigner {
	return &EventSigner{
		secretKey: []byte(secretKey),
	}
}

func (s *EventSigner) Sign(entryID string, timestamp time.Time, sourceIP string, data []byte) string {
	payload := entryID + timestamp.Format(time.RFC3339Nano) + sourceIP + string(data)
	h := hmac.New(sha256.New, s.secretKey)
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}

func (s *EventSigner) Verify(entryID string, timestamp time.Time, sourceIP string, data []byte, signature string) bool {
	expected := s.Sign(entryID, timestamp, sourceIP, data)
	return hmac.Equal([]byte(expected), []byte(signature))
}
