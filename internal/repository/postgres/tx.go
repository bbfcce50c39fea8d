package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"guestlist/internal/domain"
)

// Querier is the subset of database/sql methods shared by *sql.DB and
// *sql.Tx, so repository code runs unchanged inside or outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txRunner struct {
	db *sql.DB
}

// NewTxRunner returns a TxRunner over the given pool.
func NewTxRunner(db *sql.DB) domain.TxRunner {
	return &txRunner{db: db}
}

// WithinTx begins a transaction, hands transaction-scoped repositories to fn,
// and commits if fn returns nil. On error or panic everything rolls back and
// the original error (or panic) is re-surfaced. No partial multi-row write is
// ever observably committed.
func (r *txRunner) WithinTx(ctx context.Context, fn func(domain.Repositories) error) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p) // re-panic after rollback
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("rollback failed (%v) after original error: %w", rbErr, err)
			}
		}
	}()

	repos := domain.Repositories{
		Accounts: NewAccountRepository(tx),
		Events:   NewEventRepository(tx),
		Guests:   NewGuestRepository(tx),
	}
	if err = fn(repos); err != nil {
		return err // rollback handled by defer
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
