package middleware

import (
	"net/http"

	"github.com/urbanfresh/auth-api/internal/http/respond"
	"github.com/urbanfresh/auth-api/internal/models"
)

// RequireRole gates a route group to the given roles. It must run after
// Authenticate, which populates the context claims.
func RequireRole(allowed ...models.Role) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[role.String()] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFrom(r.Context())
			if !ok {
				respond.Error(w, http.StatusUnauthorized, unauthenticatedMessage)
				return
			}
			if _, ok := set[claims.Role]; !ok {
				respond.Error(w, http.StatusForbidden, "You do not have permission to access this resource")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
