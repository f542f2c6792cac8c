// Package auth provides the token service and the credential hasher
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and validates the signed bearer tokens that carry a
// user id. The signing secret is loaded once at startup and never rotated
// during the process lifetime.
type TokenService struct {
	secret      string
	tokenExpiry time.Duration
}

// NewTokenService creates a new token service
func NewTokenService(secret string, tokenExpiry time.Duration) *TokenService {
	return &TokenService{
		secret:      secret,
		tokenExpiry: tokenExpiry,
	}
}

// Generate creates a signed token embedding the user id, expiring
// tokenExpiry from now
func (ts *TokenService) Generate(userID int) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": now.Add(ts.tokenExpiry).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ts.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Validate checks the token signature and expiry. It does not check whether
// the embedded user still exists; that is the resolver's job.
func (ts *TokenService) Validate(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.secret), nil
	})

	if err != nil {
		return fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return fmt.Errorf("token is invalid")
	}

	return nil
}

// ExtractUserID decodes the user id from the token payload without
// re-validating signature or expiry. Callers must have already called
// Validate; an undecodable token returns an error rather than a wrong id.
func (ts *TokenService) ExtractUserID(tokenString string) (int, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return 0, fmt.Errorf("failed to decode token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}

	// JWT claims decode numbers as float64
	userID, ok := claims["id"].(float64)
	if !ok {
		return 0, fmt.Errorf("id not found in token")
	}

	return int(userID), nil
}
