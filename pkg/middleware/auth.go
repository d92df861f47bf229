package middleware

import (
	"net/http"
	"strings"

	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

// TokenVerifier decodes a bearer token. A zero Identity means invalid.
type TokenVerifier interface {
	Verify(token string) auth.Identity
}

// Auth rejects requests without a valid bearer token and stores the decoded
// identity on the request context.
func Auth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				response.Unauthorized(w)
				return
			}

			id := tokens.Verify(token)
			if !id.Authenticated() {
				response.Error(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

// UserIDFromCtx returns the authenticated user id, if any.
func UserIDFromCtx(r *http.Request) (uint, bool) {
	id, ok := auth.FromContext(r.Context())
	return id.UserID, ok
}

// RoleFromCtx returns the authenticated user's role, if any.
func RoleFromCtx(r *http.Request) (string, bool) {
	id, ok := auth.FromContext(r.Context())
	return id.Role, ok
}

func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
