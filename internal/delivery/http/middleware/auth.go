package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "confsite/internal/delivery/http/helpers"
	"confsite/internal/domain"
)

type contextKey string

const principalKey contextKey = "principal"

// SetPrincipal returns a context carrying the authenticated principal. Used by auth middleware.
func SetPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the authenticated principal from the context, if present.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	return p, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the principal in the request context.
// If the token is missing or invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			principal, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected", "path", r.URL.Path, "err", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			next(w, r.WithContext(SetPrincipal(r.Context(), principal)))
		}
	}
}
