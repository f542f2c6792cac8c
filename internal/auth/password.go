package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword transforms a plaintext password into a salted bcrypt hash.
// The plaintext is never logged or returned.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against a stored hash. A
// mismatch is an ordinary false, not an error; bcrypt's comparison does not
// reveal where the mismatch occurred.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
