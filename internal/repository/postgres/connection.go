package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/FlamingoLogic/chat-markdown-app/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TableNames holds the environment-prefixed table names
type TableNames struct {
	LibraryState string
}

// NewTableNames creates table names with the given prefix (dev_, test_, prod_)
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		LibraryState: fmt.Sprintf("%slibrary_state", prefix),
	}
}

// CreateConnectionPool creates a pgx pool and pings the database.
//
// Port 6543 is the usual PgBouncer transaction pooler port, which does not
// support prepared statements; there the pool switches to
// QueryExecModeCacheDescribe unless the connection string already chose a
// mode via default_query_exec_mode.
func CreateConnectionPool(ctx context.Context, databaseURL string, logger *slog.Logger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	// Two keys written per mutation; a small pool is plenty
	config.MaxConns = 5
	config.MinConns = 1

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		logger.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction on ctx if there is one, else the pool
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
