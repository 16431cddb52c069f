package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"invoicedash/internal/model"
)

var ErrEmailTaken = errors.New("email already registered")

type AuthService struct {
	db DBTX
}

func NewAuthService(db DBTX) *AuthService {
	return &AuthService{db: db}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	query := `INSERT INTO users (name, email, password) VALUES ($1, $2, $3) RETURNING id`
	row := s.db.QueryRowContext(ctx, query, name, email, hash)

	user := model.User{Name: name, Email: email, PasswordHash: hash}
	if err := row.Scan(&user.ID); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &user, nil
}

func (s *AuthService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, name, email, password FROM users WHERE email = $1`
	row := s.db.QueryRowContext(ctx, query, email)

	var user model.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}
