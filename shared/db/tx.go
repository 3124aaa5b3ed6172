package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrReadOnlyTx is returned when a write transaction is requested inside a
// read-only one.
var ErrReadOnlyTx = errors.New("cannot start a write transaction inside a read-only transaction")

// txKey is the key type for storing the transaction in context
type txKey struct{}

type txState struct {
	tx       *sql.Tx
	readOnly bool
}

// Executor is the query surface shared by *sql.DB and *sql.Tx.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx attaches a read-write tx to ctx.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, txState{tx: tx})
}

func withTxState(ctx context.Context, state txState) context.Context {
	return context.WithValue(ctx, txKey{}, state)
}

// GetTx returns the transaction carried by ctx, if any.
func GetTx(ctx context.Context) (*sql.Tx, bool) {
	state, ok := ctx.Value(txKey{}).(txState)
	return state.tx, ok
}

// GetExecutor returns the transaction in ctx, or db when there is none.
func GetExecutor(ctx context.Context, db *sql.DB) Executor {
	if tx, ok := GetTx(ctx); ok {
		return tx
	}
	return db
}

// RunInTransaction runs fn inside a read-write transaction.
func RunInTransaction(ctx context.Context, db *sql.DB, fn func(ctx context.Context) error) error {
	return RunInTransactionWithOptions(ctx, db, nil, fn)
}

// RunInTransactionWithOptions runs fn inside a transaction started with opts.
//
// An enclosing transaction in ctx is reused and left for the outer caller to
// commit or roll back. A read-only enclosing transaction only hosts read-only
// work. On SQLite opened with _txlock=immediate, read-only transactions begin
// deferred and so never take the write lock.
func RunInTransactionWithOptions(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	readOnly := opts != nil && opts.ReadOnly

	// Reuse an enclosing transaction without committing or rolling it back
	if outer, ok := ctx.Value(txKey{}).(txState); ok {
		if outer.readOnly && !readOnly {
			return ErrReadOnlyTx
		}
		return fn(ctx)
	}

	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// A panicking fn must not leave the connection inside an open transaction
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(withTxState(ctx, txState{tx: tx, readOnly: readOnly})); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("failed to rollback transaction after error %v: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
