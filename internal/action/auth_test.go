package action

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invoicedash/internal/auth"
	"invoicedash/internal/validation"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) SignIn(ctx context.Context, strategy string, fields map[string]string) (*auth.Session, error) {
	ret := m.Called(ctx, strategy, fields)
	s, _ := ret.Get(0).(*auth.Session)
	return s, ret.Error(1)
}

func TestAuthenticate(t *testing.T) {
	fields := validation.Fields{"email": "user@nextmail.com", "password": "wrong-pass"}

	t.Run("credential rejection", func(t *testing.T) {
		p := &mockProvider{}
		p.On("SignIn", mock.Anything, "credentials", map[string]string(fields)).
			Return(nil, errors.New("CredentialsSignin: bad password"))

		res, err := NewAuthActions(p).Authenticate(context.Background(), "", fields)

		require.NoError(t, err)
		assert.Equal(t, "CredentialSignin", res.Error)
		assert.Nil(t, res.Session)
	})

	t.Run("wrapped rejection from provider", func(t *testing.T) {
		p := &mockProvider{}
		p.On("SignIn", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("sign in: %w", &auth.SignInError{Type: auth.TypeCredentials}))

		res, err := NewAuthActions(p).Authenticate(context.Background(), "", fields)

		require.NoError(t, err)
		assert.Equal(t, CredentialSignin, res.Error)
	})

	t.Run("other failure is returned unchanged", func(t *testing.T) {
		boom := errors.New("provider unreachable")
		p := &mockProvider{}
		p.On("SignIn", mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)

		res, err := NewAuthActions(p).Authenticate(context.Background(), "", fields)

		assert.Same(t, boom, err)
		assert.Empty(t, res.Error)
	})

	t.Run("success", func(t *testing.T) {
		sess := &auth.Session{UserID: "u1", Token: "tok"}
		p := &mockProvider{}
		p.On("SignIn", mock.Anything, "credentials", mock.Anything).Return(sess, nil)

		res, err := NewAuthActions(p).Authenticate(context.Background(), CredentialSignin, fields)

		require.NoError(t, err)
		assert.Empty(t, res.Error)
		assert.Same(t, sess, res.Session)
	})
}
