package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &DB{db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS todos (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    completed INTEGER NOT NULL DEFAULT 0,
    priority TEXT,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_todos_completed ON todos(completed);
`

// RunMigrations creates the schema if it does not exist yet.
func (db *DB) RunMigrations() error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// MigrateLegacyPriorities assigns MEDIUM to rows stored before priorities
// existed and clamps updated_at to created_at. It returns the number of rows
// touched.
func (db *DB) MigrateLegacyPriorities(ctx context.Context) (int, error) {
	res, err := db.ExecContext(ctx, `
		UPDATE todos
		SET priority = 'MEDIUM'
		WHERE priority IS NULL OR priority = ''
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to migrate priorities: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if _, err := db.ExecContext(ctx, `UPDATE todos SET updated_at = created_at WHERE updated_at < created_at`); err != nil {
		return 0, fmt.Errorf("failed to clamp timestamps: %w", err)
	}

	return int(n), nil
}
