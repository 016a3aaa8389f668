package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/vastra/pkg/auth"
	"github.com/shashiranjanraj/vastra/pkg/response"
)

type userIDKey struct{}
type roleKey struct{}

// Authenticate verifies the bearer token and stores the caller's id and
// role in the request context. WebSocket clients cannot set headers from
// the browser, so a ?token= query parameter is accepted as a fallback.
func Authenticate(tokens *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				raw = r.URL.Query().Get("token")
			}
			if raw == "" {
				response.Unauthorized(w)
				return
			}

			claims, err := tokens.ParseTyped(raw, auth.TokenTypeAccess)
			if err != nil {
				response.Unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey{}, claims.UserID)
			ctx = context.WithValue(ctx, roleKey{}, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// UserIDFromCtx returns the authenticated user's id, or 0 when the
// request did not pass through Authenticate.
func UserIDFromCtx(ctx context.Context) uint {
	id, _ := ctx.Value(userIDKey{}).(uint)
	return id
}

// RoleFromCtx returns the authenticated user's role, or "" when absent.
func RoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(roleKey{}).(string)
	return role
}
