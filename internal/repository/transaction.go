package repository

import (
	"context"
	"time"

	"charter/internal/domain"
)

// TransactionRepository defines the persistence operations for ledger
// transactions.
type TransactionRepository interface {
	// Create persists a new transaction.
	Create(ctx context.Context, txn *domain.Transaction) error

	// GetByID retrieves a transaction by ID.
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)

	// GetAllByUser retrieves all transactions belonging to a user.
	GetAllByUser(ctx context.Context, userID string) ([]*domain.Transaction, error)

	// GetPending retrieves all transactions awaiting review.
	GetPending(ctx context.Context) ([]*domain.Transaction, error)

	// UpdateStatusIfPending transitions a transaction out of PENDING.
	// Returns false (and no mutation) when the transaction is already
	// in a terminal status; this is the guard against applying the
	// same review twice.
	UpdateStatusIfPending(ctx context.Context, id string, status domain.TransactionStatus, notes string, processedAt time.Time) (bool, error)
}
