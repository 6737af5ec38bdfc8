package presentation

import (
	"context"
	"net/http"
	"strings"

	"github.com/tmms/tailor-master-service/internal/application"
	"github.com/tmms/tailor-master-service/internal/presentation/helpers"
)

type ctxKey string

const userKey ctxKey = "username"

// RequireAuth guards the API with the Bearer session token issued by /login.
func RequireAuth(auth *application.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" || token == header {
				helpers.HttpError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			username := auth.Validate(token)
			if username == "" {
				helpers.HttpError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}
			ctx := context.WithValue(r.Context(), userKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Username returns the logged-in username stored by RequireAuth.
func Username(r *http.Request) string {
	if v, ok := r.Context().Value(userKey).(string); ok {
		return v
	}
	return ""
}
