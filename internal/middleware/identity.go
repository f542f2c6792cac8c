// Package middleware provides the HTTP middleware chain: identity
// resolution, the admin gate, and the ambient request plumbing.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/thirteenmd/back-end-task/internal/apperrors"
	"github.com/thirteenmd/back-end-task/internal/auth"
	"github.com/thirteenmd/back-end-task/internal/models"
)

type contextKey string

const identityKey contextKey = "identity"

// UserFinder is the user lookup the identity resolver needs
type UserFinder interface {
	// Method FindByID retrieves a user by ID.
	//
	// "id" parameter is used to identify the user.
	//
	// If no user with such ID exists, "nil" is returned without an error.
	FindByID(ctx context.Context, id int) (*models.User, error)
}

// Authenticate resolves the Authorization header into a bound Identity and
// stores it in the request context, or rejects the request. Header-shape
// failures get their own codes; every token-level failure, including a token
// bound to a user that no longer exists, collapses to AUTH_TOKEN_INVALID so
// the response does not reveal which check failed.
func Authenticate(tokenService *auth.TokenService, users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respondError(w, apperrors.Authentication(apperrors.CodeAuthMissing))
				return
			}

			scheme, rest, _ := strings.Cut(header, " ")
			if !strings.EqualFold(scheme, "bearer") {
				respondError(w, apperrors.Authentication(apperrors.CodeAuthWrongType))
				return
			}

			// The token is the word right after the scheme; a doubled
			// separator means there is no token, not a token with a space.
			token, _, _ := strings.Cut(rest, " ")
			if token == "" {
				respondError(w, apperrors.Authentication(apperrors.CodeAuthTokenMissing))
				return
			}

			if err := tokenService.Validate(token); err != nil {
				respondError(w, apperrors.Authentication(apperrors.CodeAuthTokenInvalid))
				return
			}

			userID, err := tokenService.ExtractUserID(token)
			if err != nil {
				respondError(w, apperrors.Authentication(apperrors.CodeAuthTokenInvalid))
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				respondError(w, apperrors.Internal(err))
				return
			}
			if user == nil {
				respondError(w, apperrors.Authentication(apperrors.CodeAuthTokenInvalid))
				return
			}

			identity := &models.Identity{Token: token, User: user}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin is the role gate: it rejects any caller whose bound user is
// not an administrator. It must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := GetIdentity(r.Context())
		if identity == nil {
			respondError(w, apperrors.Authentication(apperrors.CodeAuthMissing))
			return
		}

		if !identity.IsAdmin() {
			respondError(w, apperrors.Authorization(apperrors.CodeForbidden))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetIdentity retrieves the bound caller identity from the context, or nil
// on an unauthenticated request
func GetIdentity(ctx context.Context) *models.Identity {
	identity, _ := ctx.Value(identityKey).(*models.Identity)
	return identity
}

// respondError writes a domain error as JSON with its mapped status code
func respondError(w http.ResponseWriter, err *apperrors.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus())
	w.Write([]byte(`{"error":"` + err.Code + `"}`))
}
