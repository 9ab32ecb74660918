package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateSchema creates the categories and questions tables.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS categories (
	id SERIAL PRIMARY KEY,
	type TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
	id SERIAL PRIMARY KEY,
	question TEXT NOT NULL,
	answer TEXT NOT NULL,
	category INTEGER NOT NULL,
	difficulty INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_questions_category ON questions(category);
`
