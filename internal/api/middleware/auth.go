package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// TokenVerifier validates a bearer token and returns the principal id it
// carries.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

const principalKey ctxKey = iota + 1

// RequireAuth rejects requests without a valid bearer token and stores the
// principal id in the request context for handlers to read.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principalID, ok := principalFromRequest(r, verifier)
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"status_code": http.StatusUnauthorized,
					"message":     "authentication required",
				})
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principalID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth stores the principal id when a valid bearer token is
// present and passes the request through anonymously otherwise.
func OptionalAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if principalID, ok := principalFromRequest(r, verifier); ok {
				ctx := context.WithValue(r.Context(), principalKey, principalID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func principalFromRequest(r *http.Request, verifier TokenVerifier) (uuid.UUID, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return uuid.Nil, false
	}

	principalID, err := verifier.Verify(token)
	if err != nil {
		return uuid.Nil, false
	}

	return principalID, true
}

// GetPrincipalID retrieves the authenticated principal id from context,
// or uuid.Nil for anonymous requests.
func GetPrincipalID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(principalKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
