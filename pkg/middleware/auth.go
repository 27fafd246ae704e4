package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/bhandar/pkg/auth"
	"github.com/shashiranjanraj/bhandar/pkg/response"
)

type claimsKey struct{}

// AuthMiddleware validates the Bearer token and stores the decoded claims in
// the request context for downstream handlers and the rbac middleware.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(w)
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromCtx returns the authenticated claims stored by AuthMiddleware.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok
}

// UserIDFromCtx returns the authenticated user's ID, or (0, false).
func UserIDFromCtx(ctx context.Context) (uint, bool) {
	c, ok := ClaimsFromCtx(ctx)
	if !ok {
		return 0, false
	}
	return c.UserID, true
}

// RoleFromCtx returns the authenticated user's role, or ("", false).
func RoleFromCtx(ctx context.Context) (string, bool) {
	c, ok := ClaimsFromCtx(ctx)
	if !ok {
		return "", false
	}
	return c.Role, true
}
