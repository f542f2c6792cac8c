package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Password123!")
	require.NoError(t, err)

	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "Password123!", hash)
}

func TestHashPassword_Salted(t *testing.T) {
	// Two hashes of the same password differ; only verification ties them
	hash1, err := HashPassword("Password123!")
	require.NoError(t, err)
	hash2, err := HashPassword("Password123!")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
	assert.True(t, CheckPassword("Password123!", hash1))
	assert.True(t, CheckPassword("Password123!", hash2))
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		expected bool
	}{
		{
			name:     "correct password",
			password: "correct-password",
			hash:     hash,
			expected: true,
		},
		{
			name:     "wrong password",
			password: "wrong-password",
			hash:     hash,
			expected: false,
		},
		{
			name:     "malformed hash is a mismatch, not a crash",
			password: "correct-password",
			hash:     "not-a-bcrypt-hash",
			expected: false,
		},
		{
			name:     "empty hash",
			password: "correct-password",
			hash:     "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CheckPassword(tt.password, tt.hash))
		})
	}
}
