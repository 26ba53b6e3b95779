package postgres

import (
	"context"
	"fmt"
)

const todosSchema = `
CREATE TABLE IF NOT EXISTS todos (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	title TEXT NOT NULL,
	completed BOOLEAN NOT NULL DEFAULT FALSE,
	image_url TEXT,
	image_name TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_todos_created_at ON todos (created_at DESC);
`

// EnsureSchema creates the todos table and its display-order index if they
// do not exist yet. Safe to run on every startup and from `admin migrate`.
func EnsureSchema(ctx context.Context, db *DB) error {
	if _, err := db.ExecContext(ctx, todosSchema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
