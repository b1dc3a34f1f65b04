package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/silis/backend/internal/apperr"
	"github.com/silis/backend/internal/logging"
)

type contextKey string

const adminKey contextKey = "is_admin"

// WithAdmin marks the context as carrying a verified admin credential.
func WithAdmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, adminKey, true)
}

// IsAdminFromContext reports whether RequireAdmin let the request through.
func IsAdminFromContext(ctx context.Context) bool {
	v, _ := ctx.Value(adminKey).(bool)
	return v
}

// RequireAdmin rejects requests whose Authorization header does not pass a.
func RequireAdmin(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := a.Authorize(r.Context(), r.Header.Get("Authorization")); err != nil {
				logging.SecurityEvent(r.Context(), "ADMIN_TOKEN_REJECTED", r.Method+" "+r.URL.Path+": "+err.Error(), ClientIP(r))

				msg := "Требуется авторизация"
				var ue *apperr.UnauthorizedError
				if errors.As(err, &ue) {
					msg = ue.Reason
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"success": false,
					"error":   "unauthorized",
					"message": msg,
				})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context())))
		})
	}
}

// ClientIP returns the caller address, taking the rightmost
// X-Forwarded-For entry added by the single trusted reverse proxy.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[len(parts)-1]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
