// Package sqlite stores library snapshots in a single-file SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS library_state (
	key        TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Gateway implements the key/value gateway over SQLite
type Gateway struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens or creates the database at path
func Open(path string, logger *slog.Logger) (*Gateway, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One writer at a time; SQLite serializes anyway
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Gateway{db: db, logger: logger}, nil
}

// DB exposes the handle for the transaction manager
func (g *Gateway) DB() *sql.DB {
	return g.db
}

// Load returns the payload for key, or nil
func (g *Gateway) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := executor(ctx, g.db).QueryRowContext(ctx,
		`SELECT data FROM library_state WHERE key = ?`, key,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return data, nil
}

// Save upserts the payload for key
func (g *Gateway) Save(ctx context.Context, key string, data []byte) error {
	_, err := executor(ctx, g.db).ExecContext(ctx, `
		INSERT INTO library_state (key, data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, key, data)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	g.logger.Debug("snapshot saved", "key", key, "bytes", len(data))
	return nil
}

// Purge drops the snapshot table. The gateway is unusable afterwards until
// the database is reopened.
func (g *Gateway) Purge(ctx context.Context) error {
	if _, err := g.db.ExecContext(ctx, `DROP TABLE IF EXISTS library_state`); err != nil {
		return fmt.Errorf("drop library_state: %w", err)
	}
	g.logger.Info("table dropped", "table", "library_state")
	return nil
}

// Close closes the database
func (g *Gateway) Close() error {
	return g.db.Close()
}
