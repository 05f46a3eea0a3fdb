package postgres

import (
	"context"
	"database/sql"

	"charter/internal/repository"
)

// Atomic implements repository.Atomic using database/sql transactions.
type Atomic struct {
	db *sql.DB
}

// NewAtomic creates a new Atomic bound to the given database.
func NewAtomic(db *sql.DB) *Atomic {
	return &Atomic{db: db}
}

// WithinTx begins a transaction, runs fn against transaction-scoped
// repositories, and commits. Any error from fn (or from commit) rolls
// the whole unit back.
func (a *Atomic) WithinTx(ctx context.Context, fn func(tx repository.LedgerTx) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(&ledgerTx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// ledgerTx bundles transaction-scoped repositories.
type ledgerTx struct {
	tx *sql.Tx
}

func (l *ledgerTx) Users() repository.UserRepository {
	return NewUserRepositoryWithTx(l.tx)
}

func (l *ledgerTx) Bookings() repository.BookingRepository {
	return NewBookingRepositoryWithTx(l.tx)
}

func (l *ledgerTx) Transactions() repository.TransactionRepository {
	return NewTransactionRepositoryWithTx(l.tx)
}

// Ensure the interface is satisfied.
var _ repository.Atomic = (*Atomic)(nil)
