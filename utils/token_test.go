package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func TestIssueAndVerifySessionToken(t *testing.T) {
	token, err := IssueSessionToken(testSecret, 42, "budi@example.com", "USER")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims := VerifySessionToken(testSecret, token)
	assert.NotNil(t, claims)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "budi@example.com", claims.Email)
	assert.Equal(t, "USER", claims.Role)
}

func TestVerifySessionTokenFailsClosed(t *testing.T) {
	token, err := IssueSessionToken(testSecret, 1, "admin@example.com", "ADMIN")
	assert.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"malformed token", "not.a.jwt"},
		{"wrong secret", mustSign(t, "other-secret", time.Hour)},
		{"tampered payload", tamper(token)},
		{"expired token", mustSign(t, testSecret, -time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, VerifySessionToken(testSecret, tt.token))
		})
	}
}

func TestVerifySessionTokenRejectsWrongAlgorithm(t *testing.T) {
	// A token signed with "none" must never verify
	claims := SessionClaims{UserID: 1, Email: "x@example.com", Role: "ADMIN"}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	assert.Nil(t, VerifySessionToken(testSecret, raw))
}

// tamper flips the role claim without re-signing
func tamper(token string) string {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return token
	}
	// Replace the payload with a differently-encoded one; the signature
	// no longer matches.
	parts[1] = parts[1][:len(parts[1])-2] + "xx"
	return strings.Join(parts, ".")
}

func mustSign(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()
	now := time.Now().UTC()
	claims := SessionClaims{
		UserID: 7,
		Email:  "staff@example.com",
		Role:   "STAFF",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return raw
}
