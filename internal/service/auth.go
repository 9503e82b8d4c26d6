package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/cx-tal-miterani/airline-booking/internal/auth"
	"github.com/cx-tal-miterani/airline-booking/internal/database"
	"github.com/cx-tal-miterani/airline-booking/internal/models"
)

const minPasswordLength = 8

type authService struct {
	users  UserStore
	tokens TokenSigner
}

// NewAuthService creates a new auth service
func NewAuthService(users UserStore, tokens TokenSigner) AuthService {
	return &authService{users: users, tokens: tokens}
}

// checkCredentials returns the trimmed email and the password hash
func checkCredentials(creds models.Credentials) (string, string, error) {
	email := strings.TrimSpace(creds.Email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", "", invalid("email", "enter a valid email address")
	}
	if len(creds.Password) < minPasswordLength {
		return "", "", invalid("password", "must be at least 8 characters")
	}

	hash, err := auth.HashPassword(creds.Password)
	if err != nil {
		return "", "", err
	}
	return email, hash, nil
}

func (s *authService) Register(ctx context.Context, creds models.Credentials) (*models.User, error) {
	email, hash, err := checkCredentials(creds)
	if err != nil {
		return nil, err
	}

	user := &models.User{Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, invalid("email", "a user with this email already exists")
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) Token(ctx context.Context, creds models.Credentials) (*TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(creds.Email))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.CheckPassword(user.PasswordHash, creds.Password); err != nil {
		return nil, err
	}

	token, expires, err := s.tokens.Issue(*user)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expires.Unix(),
	}, nil
}

// EnsureAdmin creates a staff account for creds, or promotes the existing
// account and resets its password.
func (s *authService) EnsureAdmin(ctx context.Context, creds models.Credentials) (*models.User, error) {
	email, hash, err := checkCredentials(creds)
	if err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return s.users.Promote(ctx, existing.ID, hash)
	case !errors.Is(err, database.ErrNotFound):
		return nil, err
	}

	user := &models.User{Email: email, PasswordHash: hash, IsStaff: true}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
