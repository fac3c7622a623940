package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	chat "parley/internal/pkg/chat/application/domain"
)

// Service implements signup and credential login on top of a Store and a
// Sessions registry.
type Service struct {
	Store    Store
	Sessions *Sessions
}

func NewService(store Store, sessions *Sessions) *Service {
	return &Service{Store: store, Sessions: sessions}
}

// Signup registers a new user and returns their public profile.
func (s *Service) Signup(ctx context.Context, name, email, password string) (*chat.Profile, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account, err := s.Store.Create(ctx, name, email, string(hash))
	if err != nil {
		return nil, err
	}
	return &chat.Profile{ID: account.ID, Name: account.Name, Email: account.Email, Avatar: account.Avatar}, nil
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (token string, profile *chat.Profile, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, ErrBadCredentials
	}

	account, err := s.Store.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrBadCredentials
	}

	token, err = s.Sessions.Issue(ctx, account.ID)
	if err != nil {
		return "", nil, err
	}
	return token, &chat.Profile{ID: account.ID, Name: account.Name, Email: account.Email, Avatar: account.Avatar}, nil
}

// Logout revokes the session token. Idempotent.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.Sessions.Revoke(ctx, token)
}
