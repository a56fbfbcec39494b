package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager groups gateway writes so both snapshot keys land together
type TransactionManager interface {
	// ExecTx executes a function within a transaction
	ExecTx(ctx context.Context, fn TxFn) error
}

// PassthroughTxManager runs fn directly, for backends without transactions.
type PassthroughTxManager struct{}

// ExecTx calls fn with the unchanged context
func (PassthroughTxManager) ExecTx(ctx context.Context, fn TxFn) error {
	return fn(ctx)
}
