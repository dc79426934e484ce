package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the messaging tables if they do not exist yet. The API
// binary runs it at startup; the worker holds no durable state and does not
// need it.
//
// The unique index on (user_low, user_high) is what makes concurrent
// get-or-create safe: two racing creates for the same unordered pair can
// never both commit. created_at on messages uses clock_timestamp() so rows
// written inside the same transaction still get distinct timestamps; seq
// breaks any remaining ties.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id                  TEXT PRIMARY KEY,
		email               TEXT NOT NULL UNIQUE,
		first_name          TEXT NOT NULL,
		last_name           TEXT NOT NULL,
		profile_picture     TEXT,
		email_notifications BOOLEAN NOT NULL DEFAULT TRUE,
		notify_on_messages  BOOLEAN NOT NULL DEFAULT TRUE,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS conversations (
		id         TEXT PRIMARY KEY,
		user_low   TEXT NOT NULL,
		user_high  TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT conversations_pair_unique UNIQUE (user_low, user_high),
		CONSTRAINT conversations_pair_ordered CHECK (user_low < user_high)
	);

	CREATE TABLE IF NOT EXISTS participants (
		conversation_id TEXT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
		user_id         TEXT NOT NULL,
		PRIMARY KEY (conversation_id, user_id)
	);

	CREATE TABLE IF NOT EXISTS messages (
		seq             BIGSERIAL PRIMARY KEY,
		id              TEXT NOT NULL UNIQUE,
		conversation_id TEXT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
		sender_id       TEXT NOT NULL,
		content         TEXT NOT NULL,
		is_read         BOOLEAN NOT NULL DEFAULT FALSE,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
	);

	CREATE INDEX IF NOT EXISTS idx_participants_user ON participants (user_id);
	CREATE INDEX IF NOT EXISTS idx_messages_conversation_order ON messages (conversation_id, created_at, seq);
	CREATE INDEX IF NOT EXISTS idx_messages_unread ON messages (conversation_id) WHERE is_read = FALSE;
	CREATE INDEX IF NOT EXISTS idx_conversations_user_low ON conversations (user_low, updated_at DESC);
	CREATE INDEX IF NOT EXISTS idx_conversations_user_high ON conversations (user_high, updated_at DESC);
	`
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	return nil
}
