package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore implements Store over a pgx pool.
type PgStore struct {
	pool *pgxpool.Pool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

var _ Store = (*PgStore)(nil)

func (s *PgStore) Create(ctx context.Context, name, email, passwordHash string) (*Account, error) {
	if s == nil || s.pool == nil {
		return nil, errors.New("PgStore: nil pool")
	}
	a := Account{Name: name, Email: email, PasswordHash: passwordHash}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO app_user (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id::text, created_at
	`, name, email, passwordHash).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &a, nil
}

func (s *PgStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	if s == nil || s.pool == nil {
		return nil, errors.New("PgStore: nil pool")
	}
	var a Account
	err := s.pool.QueryRow(ctx, `
		SELECT id::text, name, email, avatar, password_hash, created_at
		FROM app_user WHERE lower(email) = lower($1)
	`, email).Scan(&a.ID, &a.Name, &a.Email, &a.Avatar, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
