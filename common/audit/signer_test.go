package audit

import (
	"testing"
	"time"
)

func TestNewEventSigner(t *testing.T) {
	secretKey := "test-secret-key"
	signer := NewEventSigner(secretKey)

	if signer == nil {
		t.Fatal("expected non-nil signer")
	}

	if string(signer.secretKey) != secretKey {
		t.Errorf("expected secret key %q, got %q", secretKey, string(signer.secretKey))
	}
}

func TestEventSigner_Sign(t *testing.T) {
	signer := NewEventSigner("test-secret")
	timestamp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	entryID := "entry-123"
	sourceIP := "192.168.1.100"
	data := []byte(`{"test": "data"}`)

	signature := signer.Sign(entryID, timestamp, sourceIP, data)

	// Signature should not be empty
	if signature == "" {
		t.Error("expected non-empty signature")
	}

	// Signature should be deterministic
	signature2 := signer.Sign(entryID, timestamp, sourceIP, data)
	if signature != signature2 {
		t.Error("expected deterministic signatures for same input")
	}

	// Different inputs should produce different signatures
	signature3 := signer.Sign("different-entry", timestamp, sourceIP, data)
	if signature == signature3 {
		t.Error("expected different signatures for different entry IDs")
	}
}

func TestEventSigner_Verify(t *testing.T) {
	signer := NewEventSigner("test-secret")
	timestamp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	entryID := "entry-456"
	sourceIP := "10.0.0.1"
	data := []byte(`{"user": "admin", "action": "login"}`)

	signature := signer.Sign(entryID, timestamp, sourceIP, data)

	tests := []struct {
		name      string
		entryID   string
		timestamp time.Time
		sourceIP  string
		data      []byte
		wantValid bool
	}{
		{
			name:      "valid signature",
			entryID:   entryID,
			timestamp: timestamp,
			sourceIP:  sourceIP,
			data:      data,
			wantValid: true,
		},
		{
			name:      "wrong entry ID",
			entryID:   "wrong-entry",
			timestamp: timestamp,
			sourceIP:  sourceIP,
			data:      data,
			wantValid: false,
		},
		{
			name:      "wrong timestamp",
			entryID:   entryID,
			timestamp: timestamp.Add(1 * time.Hour),
			sourceIP:  sourceIP,
			data:      data,
			wantValid: false,
		},
		{
			name:      "wrong source IP",
			entryID:   entryID,
			timestamp: timestamp,
			sourceIP:  "192.168.1.1",
			data:      data,
			wantValid: false,
		},
		{
			name:      "tampered data",
			entryID:   entryID,
			timestamp: timestamp,
			sourceIP:  sourceIP,
			data:      []byte(`{"tampered": "data"}`),
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := signer.Verify(tt.entryID, tt.timestamp, tt.sourceIP, tt.data, signature)
			if result != tt.wantValid {
				t.Errorf("Verify() = %v, want %v", result, tt.wantValid)
			}
		})
	}
}

func TestEventSigner_DifferentSecrets(t *testing.T) {
	signer1 := NewEventSigner("secret-1")
	signer2 := NewEventSigner("secret-2")

	timestamp := time.Now()
	entryID := "entry-abc"
	sourceIP := "10.0.0.10"
	data := []byte(`{"test": "data"}`)

	signature1 := signer1.Sign(entryID, timestamp, sourceIP, data)

	// Verification with a different secret must fail
	if signer2.Verify(entryID, timestamp, sourceIP, data, signature1) {
		t.Error("expected verification to fail with different secret key")
	}

	signature2 := signer2.Sign(entryID, timestamp, sourceIP, data)
	if signature1 == signature2 {
		t.Error("expected different signatures with different secret keys")
	}

	if !signer1.Verify(entryID, timestamp, sourceIP, data, signature1) {
		t.Error("signer1 should verify its own signature")
	}
	if !signer2.Verify(entryID, timestamp, sourceIP, data, signature2) {
		t.Error("signer2 should verify its own signature")
	}
}

func TestEventSigner_SignatureFormat(t *testing.T) {
	signer := NewEventSigner("format-test")
	timestamp := time.Now()
	signature := signer.Sign("entry-id", timestamp, "10.0.0.1", []byte("data"))

	// HMAC-SHA256 produces 32 bytes, hex encoded = 64 characters
	if len(signature) != 64 {
		t.Errorf("expected signature length of 64 characters (hex-encoded SHA256), got %d", len(signature))
	}

	for _, c := range signature {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			t.Errorf("signature contains non-hex character: %c", c)
		}
	}
}
