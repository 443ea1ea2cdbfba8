package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager groups repository writes into one atomic commit.
// Every ingestion strategy issues exactly one ExecTx per invocation:
// commit on success, rollback on error, so a half-written project is
// never observable.
type TransactionManager interface {
	// ExecTx executes a function within a transaction
	ExecTx(ctx context.Context, fn TxFn) error
}
