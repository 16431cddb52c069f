package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"invoicedash/internal/action"
	"invoicedash/internal/mw"
	"invoicedash/internal/validation"
)

const DashboardPath = "/dashboard"

// LoginHandler signs in from a form with email and password. On success it
// sets the session cookie and redirects to redirectTo, or the dashboard.
func LoginHandler(authActions *action.AuthActions, secureCookie bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !parseForm(w, r) {
			return
		}

		fields := validation.FromValues(r.PostForm)
		res, err := authActions.Authenticate(r.Context(), "", fields)
		if err != nil {
			slog.Error("sign-in failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if res.Error != "" {
			writeError(w, http.StatusUnauthorized, res.Error)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     mw.SessionCookie,
			Value:    res.Session.Token,
			Path:     "/",
			Expires:  res.Session.ExpiresAt,
			HttpOnly: true,
			Secure:   secureCookie,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, safeRedirect(fields["redirectTo"]), http.StatusSeeOther)
	}
}

func LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     mw.SessionCookie,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
		})
		http.Redirect(w, r, mw.LoginPath, http.StatusSeeOther)
	}
}

// safeRedirect only follows local absolute paths.
func safeRedirect(to string) string {
	if !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") || strings.HasPrefix(to, "/\\") {
		return DashboardPath
	}
	return to
}
