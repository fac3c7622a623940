package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema holds the bootstrap DDL. Statements are idempotent so Migrate can
// run on every start. The unique constraints are load-bearing: the
// membership pair key and the partial index over the "General" title close
// the check-then-create races in invite handling and lazy room creation.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

	`CREATE TABLE IF NOT EXISTS app_user (
		id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		name          text NOT NULL,
		email         text NOT NULL,
		avatar        text,
		password_hash text NOT NULL,
		created_at    timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS app_user_email_key ON app_user (lower(email))`,

	`CREATE TABLE IF NOT EXISTS conversation (
		id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		title      text NOT NULL,
		owner_id   uuid NOT NULL REFERENCES app_user (id),
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS conversation_general_key
		ON conversation (title) WHERE title = 'General'`,

	`CREATE TABLE IF NOT EXISTS conversation_member (
		id              uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		conversation_id uuid NOT NULL REFERENCES conversation (id),
		user_id         uuid NOT NULL REFERENCES app_user (id),
		joined_at       timestamptz NOT NULL DEFAULT now(),
		UNIQUE (conversation_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS message (
		id              uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		conversation_id uuid NOT NULL REFERENCES conversation (id),
		user_id         uuid REFERENCES app_user (id),
		role            text NOT NULL,
		content         text NOT NULL,
		created_at      timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS message_conversation_created_idx
		ON message (conversation_id, created_at)`,
}

// Migrate applies the bootstrap DDL.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: migrate: %w", err)
		}
	}
	return nil
}
