// Package auth is the identity provider behind the dashboard sign-in form.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"golang.org/x/crypto/bcrypt"

	"invoicedash/internal/model"
	"invoicedash/internal/service"
)

const (
	StrategyCredentials = "credentials"
	TypeCredentials     = "CredentialsSignin"

	minPasswordLen = 6
)

var ErrUnknownStrategy = errors.New("unknown sign-in strategy")

// SignInError is a rejected sign-in attempt. Its message starts with Type.
type SignInError struct {
	Type string
}

func (e *SignInError) Error() string {
	return e.Type + ": sign-in rejected"
}

type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type Provider struct {
	users  UserFinder
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewProvider(users UserFinder, secret string, ttl time.Duration) *Provider {
	return &Provider{users: users, secret: secret, ttl: ttl, now: time.Now}
}

func (p *Provider) SignIn(ctx context.Context, strategy string, fields map[string]string) (*Session, error) {
	if strategy != StrategyCredentials {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}

	user, err := p.authorize(ctx, fields["email"], fields["password"])
	if err != nil {
		return nil, err
	}

	return IssueToken(p.secret, user.ID, user.Email, p.now(), p.ttl)
}

func (p *Provider) authorize(ctx context.Context, email, password string) (*model.User, error) {
	rejected := &SignInError{Type: TypeCredentials}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || len(password) < minPasswordLen {
		return nil, rejected
	}

	user, err := p.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return nil, rejected
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, rejected
	}

	return user, nil
}
