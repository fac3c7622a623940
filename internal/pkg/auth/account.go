package auth

import (
	"context"
	"errors"
	"time"
)

// Account is the credential-bearing view of a user. The chat domain only
// ever sees the public columns; the password hash stays in this package.
type Account struct {
	ID           string
	Name         string
	Email        string
	Avatar       *string
	PasswordHash string
	CreatedAt    time.Time
}

// Store defines the persistence operations the auth service needs.
type Store interface {
	// Create inserts the account and returns it with id and created_at set.
	// Returns ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, name, email, passwordHash string) (*Account, error)

	// FindByEmail returns the account or ErrBadCredentials when absent.
	FindByEmail(ctx context.Context, email string) (*Account, error)
}

var (
	ErrEmailTaken     = errors.New("auth: email already registered")
	ErrBadCredentials = errors.New("auth: invalid email or password")
	ErrNoSession      = errors.New("auth: no valid session")
	ErrInvalidInput   = errors.New("auth: invalid input")
)
