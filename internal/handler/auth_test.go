package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicedash/internal/action"
	"invoicedash/internal/auth"
	"invoicedash/internal/mw"
)

type stubProvider struct {
	sess *auth.Session
	err  error
}

func (s stubProvider) SignIn(context.Context, string, map[string]string) (*auth.Session, error) {
	return s.sess, s.err
}

func login(p action.SignInProvider, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	LoginHandler(action.NewAuthActions(p), false).ServeHTTP(w, postForm("/login", form))
	return w
}

func TestLoginHandler(t *testing.T) {
	form := url.Values{"email": {"user@nextmail.com"}, "password": {"123456"}}

	t.Run("success sets cookie", func(t *testing.T) {
		sess := &auth.Session{UserID: "u1", Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}
		w := login(stubProvider{sess: sess}, form)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/dashboard", w.Header().Get("Location"))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, mw.SessionCookie, cookies[0].Name)
		assert.Equal(t, "tok", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("rejected credentials", func(t *testing.T) {
		w := login(stubProvider{err: &auth.SignInError{Type: auth.TypeCredentials}}, form)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"CredentialSignin"}`, w.Body.String())
	})

	t.Run("provider failure", func(t *testing.T) {
		w := login(stubProvider{err: errors.New("db down")}, form)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db down")
	})

	t.Run("redirectTo", func(t *testing.T) {
		sess := &auth.Session{Token: "tok"}
		f := url.Values{"email": {"user@nextmail.com"}, "password": {"123456"}, "redirectTo": {"/dashboard/invoices"}}
		w := login(stubProvider{sess: sess}, f)
		assert.Equal(t, "/dashboard/invoices", w.Header().Get("Location"))
	})
}

func TestSafeRedirect(t *testing.T) {
	assert.Equal(t, "/dashboard/customers", safeRedirect("/dashboard/customers"))
	assert.Equal(t, DashboardPath, safeRedirect(""))
	assert.Equal(t, DashboardPath, safeRedirect("https://evil.example"))
	assert.Equal(t, DashboardPath, safeRedirect("//evil.example"))
	assert.Equal(t, DashboardPath, safeRedirect("/\\evil.example"))
}

func TestLogoutHandler(t *testing.T) {
	w := httptest.NewRecorder()
	LogoutHandler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, mw.LoginPath, w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
}
