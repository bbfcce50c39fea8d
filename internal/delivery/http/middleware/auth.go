package middleware

import (
	"context"
	"net/http"
	"strings"

	h "guestlist/internal/delivery/http/helpers"
	"guestlist/internal/domain"
)

type contextKey string

const accountIDKey contextKey = "accountID"

// SetAccountID returns a context with the account ID set. Used by auth middleware.
func SetAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, accountIDKey, accountID)
}

// AccountIDFromContext returns the authenticated account ID from the context, if present.
func AccountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(accountIDKey).(string)
	return id, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the
// account ID in the request context. A missing or invalid token short-circuits
// with an UNAUTHORIZED envelope and does not call next.
func RequireAuth(verifier domain.TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteCode(w, h.CodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteCode(w, h.CodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteCode(w, h.CodeUnauthorized, "missing token")
				return
			}
			accountID, err := verifier.Verify(token)
			if err != nil {
				h.WriteCode(w, h.CodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetAccountID(r.Context(), accountID))
			next(w, r)
		}
	}
}
