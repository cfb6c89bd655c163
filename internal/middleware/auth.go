// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/brickstash/brickstash/internal/auth"
	"go.uber.org/zap"
)

type ctxKey string

const identityKey ctxKey = "identity"

// TokenVerifier validates a bearer token and returns the caller's identity.
type TokenVerifier interface {
	Verify(tokenString string) (*auth.Identity, error)
}

// UserProvisioner creates the identity-mirror user row on first sign-in.
type UserProvisioner interface {
	EnsureUser(ctx context.Context, userID, username, email string) error
}

// BearerAuth is a middleware that authenticates requests with an
// identity-provider bearer token.
//
// The /api/health endpoint is excluded so probes work unauthenticated.
// On success the verified identity is stored in the request context and the
// user's mirror row is provisioned. Provisioning failures are logged but do
// not fail the request; the mirror row is not needed for authorization.
func BearerAuth(verifier TokenVerifier, users UserProvisioner, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/health" {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				http.Error(w, "invalid bearer token", http.StatusUnauthorized)
				return
			}

			if err := users.EnsureUser(r.Context(), identity.Subject, identity.Username, identity.Email); err != nil {
				log.Error("failed to provision user", zap.String("subject", identity.Subject), zap.Error(err))
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentityFromContext extracts the authenticated identity from the request
// context. Returns nil if not present.
func GetIdentityFromContext(ctx context.Context) *auth.Identity {
	val := ctx.Value(identityKey)
	if id, ok := val.(*auth.Identity); ok {
		return id
	}
	return nil
}
