package action

import (
	"context"
	"strings"

	"invoicedash/internal/auth"
	"invoicedash/internal/validation"
)

// CredentialSignin is the state the sign-in form shows for bad credentials.
const CredentialSignin = "CredentialSignin"

type SignInProvider interface {
	SignIn(ctx context.Context, strategy string, fields map[string]string) (*auth.Session, error)
}

type SignInResult struct {
	Error   string
	Session *auth.Session
}

type AuthActions struct {
	provider SignInProvider
}

func NewAuthActions(provider SignInProvider) *AuthActions {
	return &AuthActions{provider: provider}
}

// Authenticate signs in with the credentials strategy. A rejection is reported
// as CredentialSignin; every other failure is returned as is.
func (a *AuthActions) Authenticate(ctx context.Context, prev string, fields validation.Fields) (SignInResult, error) {
	sess, err := a.provider.SignIn(ctx, auth.StrategyCredentials, fields)
	if err != nil {
		if strings.Contains(err.Error(), auth.TypeCredentials) {
			return SignInResult{Error: CredentialSignin}, nil
		}
		return SignInResult{}, err
	}
	return SignInResult{Session: sess}, nil
}
