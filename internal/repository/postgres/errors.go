package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the gateway reports specially
const (
	codeUndefinedTable = "42P01"
	codeAdminShutdown  = "57P01"
)

// pgCode returns the SQLSTATE of a server error, or ""
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// describe wraps a failed statement on key with a hint for the codes an
// operator can act on
func describe(op, key, table string, err error) error {
	switch pgCode(err) {
	case codeUndefinedTable:
		return fmt.Errorf("%s %s: table %s is missing (purged?): %w", op, key, table, err)
	case codeAdminShutdown:
		return fmt.Errorf("%s %s: database is shutting down: %w", op, key, err)
	}
	return fmt.Errorf("%s %s: %w", op, key, err)
}
