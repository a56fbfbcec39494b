package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so the postgres
// gateway writes through a transaction when one is open on the context.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row
}

type txContextKey string

const pgxTxKey txContextKey = "pgx_tx"

// SetTx stores a pgx transaction in the context
func SetTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, pgxTxKey, tx)
}

// GetTx retrieves the pgx transaction from the context, or nil
func GetTx(ctx context.Context) pgx.Tx {
	tx, ok := ctx.Value(pgxTxKey).(pgx.Tx)
	if !ok {
		return nil
	}
	return tx
}
