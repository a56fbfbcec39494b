package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Gateway stores library snapshots in a key/value table.
// Writes join the transaction on the context when there is one.
type Gateway struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewGateway creates the gateway and its table if missing
func NewGateway(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, logger *slog.Logger) (*Gateway, error) {
	g := &Gateway{pool: pool, tables: tables, logger: logger}
	if err := g.migrate(ctx); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Gateway) migrate(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key        TEXT PRIMARY KEY,
			data       BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`, g.tables.LibraryState)

	if _, err := g.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("create %s: %w", g.tables.LibraryState, err)
	}
	return nil
}

// Load returns the payload for key, or nil when nothing is stored
func (g *Gateway) Load(ctx context.Context, key string) ([]byte, error) {
	query := fmt.Sprintf(`SELECT data FROM %s WHERE key = $1`, g.tables.LibraryState)

	var data []byte
	err := GetExecutor(ctx, g.pool).QueryRow(ctx, query, key).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, describe("load", key, g.tables.LibraryState, err)
	}
	return data, nil
}

// Save upserts the payload for key
func (g *Gateway) Save(ctx context.Context, key string, data []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`, g.tables.LibraryState)

	if _, err := GetExecutor(ctx, g.pool).Exec(ctx, query, key, data); err != nil {
		return describe("save", key, g.tables.LibraryState, err)
	}
	g.logger.Debug("snapshot saved", "key", key, "bytes", len(data))
	return nil
}

// Purge drops the environment's snapshot table. The gateway is unusable
// afterwards until it is recreated.
func (g *Gateway) Purge(ctx context.Context) error {
	query := fmt.Sprintf(`DROP TABLE IF EXISTS %s CASCADE`, g.tables.LibraryState)
	if _, err := g.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("drop %s: %w", g.tables.LibraryState, err)
	}
	g.logger.Info("table dropped", "table", g.tables.LibraryState)
	return nil
}

// Close releases the pool
func (g *Gateway) Close() error {
	g.pool.Close()
	return nil
}
