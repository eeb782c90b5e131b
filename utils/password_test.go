package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("user123")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "user123", hash, "Hash must not equal the plaintext")

	// Hashing the same password twice must produce different salted hashes
	hash2, err := HashPassword("user123")
	assert.NoError(t, err)
	assert.NotEqual(t, hash, hash2, "Salted hashes should differ")
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("user123")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		hash     string
		plain    string
		expected bool
	}{
		{"correct password", hash, "user123", true},
		{"wrong password", hash, "user124", false},
		{"empty password", hash, "", false},
		{"garbage hash", "not-a-bcrypt-hash", "user123", false},
		{"empty hash", "", "user123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CheckPassword(tt.hash, tt.plain))
		})
	}
}
