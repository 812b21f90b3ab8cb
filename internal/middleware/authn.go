package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/urbanfresh/auth-api/internal/auth"
	"github.com/urbanfresh/auth-api/internal/http/respond"
)

type contextKey int

const claimsKey contextKey = iota

const unauthenticatedMessage = "Session expired or invalid token. Please log in again."

// TokenParser validates a bearer token string.
type TokenParser interface {
	Parse(tokenStr string) (*auth.Claims, error)
}

// Authenticate rejects requests without a valid bearer token and stores the
// validated claims in the request context for downstream handlers. It runs
// before any business logic.
func Authenticate(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				respond.Error(w, http.StatusUnauthorized, unauthenticatedMessage)
				return
			}

			claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, unauthenticatedMessage)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFrom retrieves the authenticated claims placed by Authenticate.
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}
