package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenService(t *testing.T) {
	ts := NewTokenService("test-secret-key", 720*time.Hour)

	assert.NotNil(t, ts)
	assert.Equal(t, "test-secret-key", ts.secret)
	assert.Equal(t, 720*time.Hour, ts.tokenExpiry)
}

func TestTokenService_GenerateAndValidate(t *testing.T) {
	secret := "b8a3c2267dc85f855dea9b46b452bf20"

	tests := []struct {
		name          string
		issueExpiry   time.Duration
		mutate        func(token string) string
		expectedError bool
	}{
		{
			name:          "valid token",
			issueExpiry:   time.Hour,
			expectedError: false,
		},
		{
			name:          "expired token fails regardless of valid signature",
			issueExpiry:   -time.Minute,
			expectedError: true,
		},
		{
			name:        "tampered token",
			issueExpiry: time.Hour,
			mutate: func(token string) string {
				return token + "x"
			},
			expectedError: true,
		},
		{
			name:        "malformed token",
			issueExpiry: time.Hour,
			mutate: func(token string) string {
				return "not-a-token"
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := NewTokenService(secret, tt.issueExpiry)

			token, err := ts.Generate(42)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			if tt.mutate != nil {
				token = tt.mutate(token)
			}

			err = ts.Validate(token)
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTokenService_Validate_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-one", time.Hour)
	verifier := NewTokenService("secret-two", time.Hour)

	token, err := issuer.Generate(1)
	require.NoError(t, err)

	assert.NoError(t, issuer.Validate(token))
	assert.Error(t, verifier.Validate(token))
}

func TestTokenService_Validate_RejectsNonHMAC(t *testing.T) {
	ts := NewTokenService("secret", time.Hour)

	// Unsigned token claiming the "none" algorithm
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":  1,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	assert.Error(t, ts.Validate(tokenString))
}

func TestTokenService_ExtractUserID(t *testing.T) {
	ts := NewTokenService("secret", time.Hour)

	token, err := ts.Generate(123)
	require.NoError(t, err)

	userID, err := ts.ExtractUserID(token)
	require.NoError(t, err)
	assert.Equal(t, 123, userID)
}

func TestTokenService_ExtractUserID_Expired(t *testing.T) {
	// Extraction does not re-validate; an expired token still decodes
	ts := NewTokenService("secret", -time.Minute)

	token, err := ts.Generate(7)
	require.NoError(t, err)
	require.Error(t, ts.Validate(token))

	userID, err := ts.ExtractUserID(token)
	require.NoError(t, err)
	assert.Equal(t, 7, userID)
}

func TestTokenService_ExtractUserID_Errors(t *testing.T) {
	ts := NewTokenService("secret", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "garbage"},
		{name: "empty", token: ""},
		{name: "wrong segment count", token: "a.b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := ts.ExtractUserID(tt.token)
			assert.Error(t, err)
			assert.Zero(t, userID)
		})
	}
}

func TestTokenService_ExtractUserID_MissingClaim(t *testing.T) {
	ts := NewTokenService("secret", time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	userID, err := ts.ExtractUserID(tokenString)
	assert.Error(t, err)
	assert.Zero(t, userID)
}
