package tokens

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewIssuer(t *testing.T) {
	i := NewIssuer("test-secret-long-enough-for-hmac")
	if i == nil {
		t.Fatal("Expected Issuer, got nil")
	}
	if i.ttl != DefaultTTL {
		t.Errorf("Expected default TTL %v, got %v", DefaultTTL, i.ttl)
	}
	if i.TTL() != 8*time.Hour {
		t.Errorf("Expected 8h TTL, got %v", i.TTL())
	}
}

func TestIssue(t *testing.T) {
	issuer := NewIssuer("test-secret-key-that-is-long-enough")

	tests := []struct {
		name   string
		userID string
		role   string
	}{
		{
			name:   "admin token",
			userID: "user-123",
			role:   "admin",
		},
		{
			name:   "officer token",
			userID: "user-456",
			role:   "officer",
		},
		{
			name:   "empty role",
			userID: "user-789",
			role:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := issuer.Issue(tt.userID, tt.role)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if token == "" {
				t.Fatal("Expected token string, got empty")
			}
			parts := strings.Split(token, ".")
			if len(parts) != 3 {
				t.Errorf("Expected 3 JWT parts, got %d", len(parts))
			}
		})
	}
}

func TestIssueClaims(t *testing.T) {
	issuer := NewIssuer("test-secret-key-that-is-long-enough")
	userID := "test-user-123"
	role := "officer"

	tokenString, err := issuer.Issue(userID, role)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	claims, err := issuer.Verify(tokenString)
	if err != nil {
		t.Fatalf("Failed to verify token: %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("Expected UserID %s, got %s", userID, claims.UserID)
	}
	if claims.Role != role {
		t.Errorf("Expected Role %s, got %s", role, claims.Role)
	}
	if claims.Issuer != "precinct-records" {
		t.Errorf("Expected issuer 'precinct-records', got %s", claims.Issuer)
	}

	if claims.ExpiresAt == nil {
		t.Error("Expected ExpiresAt to be set")
	} else {
		expectedExpiry := time.Now().Add(DefaultTTL)
		// Allow 5 second tolerance for test execution time
		if claims.ExpiresAt.Time.Before(expectedExpiry.Add(-5*time.Second)) ||
			claims.ExpiresAt.Time.After(expectedExpiry.Add(5*time.Second)) {
			t.Errorf("Expected expiry around %v, got %v", expectedExpiry, claims.ExpiresAt.Time)
		}
	}

	if claims.IssuedAt == nil {
		t.Error("Expected IssuedAt to be set")
	}
	if claims.NotBefore == nil {
		t.Error("Expected NotBefore to be set")
	}
}

func TestVerify(t *testing.T) {
	issuer := NewIssuer("test-secret-key-that-is-long-enough")

	validToken, _ := issuer.Issue("user-123", "admin")

	otherIssuer := NewIssuer("different-secret-key-that-is-long")
	wrongSecretToken, _ := otherIssuer.Issue("user-456", "officer")

	tests := []struct {
		name         string
		tokenString  string
		expectError  bool
		expectUserID string
		expectRole   string
	}{
		{
			name:         "valid token",
			tokenString:  validToken,
			expectError:  false,
			expectUserID: "user-123",
			expectRole:   "admin",
		},
		{
			name:        "invalid token format",
			tokenString: "invalid.token.format",
			expectError: true,
		},
		{
			name:        "empty token",
			tokenString: "",
			expectError: true,
		},
		{
			name:        "malformed token (missing parts)",
			tokenString: "header.payload",
			expectError: true,
		},
		{
			name:        "token signed with different secret",
			tokenString: wrongSecretToken,
			expectError: true,
		},
		{
			name:        "completely garbage token",
			tokenString: "this-is-not-a-jwt-token-at-all",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := issuer.Verify(tt.tokenString)

			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error but got none")
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if claims == nil {
				t.Fatal("Expected claims, got nil")
			}
			if claims.UserID != tt.expectUserID {
				t.Errorf("Expected UserID %s, got %s", tt.expectUserID, claims.UserID)
			}
			if claims.Role != tt.expectRole {
				t.Errorf("Expected Role %s, got %s", tt.expectRole, claims.Role)
			}
		})
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer := NewIssuerTTL("test-secret-key-that-is-long-enough", -time.Minute)

	expiredToken, err := issuer.Issue("user-expired", "officer")
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	_, err = issuer.Verify(expiredToken)
	if err == nil {
		t.Fatal("Expected error for expired token, got none")
	}
	if !strings.Contains(err.Error(), "expired") && !strings.Contains(err.Error(), "exp") {
		t.Logf("Expected expiration error, got: %v", err)
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	issuer := NewIssuer("test-secret-key-that-is-long-enough")

	token, err := issuer.Issue("user-123", "recruit")
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	// Swap the payload for a forged one claiming a different role.
	forged := Claims{
		UserID: "user-123",
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "precinct-records",
		},
	}
	forgedToken := jwt.NewWithClaims(jwt.SigningMethodHS256, forged)
	forgedString, err := forgedToken.SignedString([]byte("attacker-secret"))
	if err != nil {
		t.Fatalf("Failed to sign forged token: %v", err)
	}

	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forgedString, ".")
	tampered := strings.Join([]string{parts[0], forgedParts[1], parts[2]}, ".")

	_, err = issuer.Verify(tampered)
	if err == nil {
		t.Fatal("Expected error for tampered token, got none")
	}
}

func TestVerifyNotYetValidToken(t *testing.T) {
	issuer := NewIssuer("test-secret-key-that-is-long-enough")

	claims := Claims{
		UserID: "user-future",
		Role:   "officer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(2 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    "precinct-records",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	futureToken, err := token.SignedString(issuer.secret)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	_, err = issuer.Verify(futureToken)
	if err == nil {
		t.Fatal("Expected error for not-yet-valid token, got none")
	}
}
