package mw

import (
	"context"
	"net/http"
	"strings"

	"invoicedash/internal/auth"
)

type contextKey string

const UserCtxKey contextKey = "user_id"

const (
	SessionCookie = "session"
	LoginPath     = "/login"
)

// AuthMiddleware lets requests with a valid session through and sends
// everyone else to the login page.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := sessionToken(r)
			if tokenString == "" {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			claims, err := auth.ParseToken(jwtSecret, tokenString)
			if err != nil {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), UserCtxKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserCtxKey).(string)
	return id, ok
}
