package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"charter/internal/domain"
	"charter/internal/repository"
)

// TransactionRepository is a PostgreSQL implementation of
// repository.TransactionRepository.
type TransactionRepository struct {
	q Querier
}

// NewTransactionRepository creates a new PostgreSQL transaction repository.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{q: db}
}

// NewTransactionRepositoryWithTx creates a transaction repository using a
// database transaction.
func NewTransactionRepositoryWithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{q: tx}
}

const transactionColumns = `
	id, user_id, booking_id, type, amount, payment_method,
	status, reference, admin_notes, created_at, processed_at
`

// Create persists a new transaction.
func (r *TransactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	query := `
		INSERT INTO transactions (
			id, user_id, booking_id, type, amount, payment_method,
			status, reference, admin_notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		txn.ID,
		txn.UserID,
		nullString(txn.BookingID),
		txn.Type,
		txn.Amount,
		txn.PaymentMethod,
		txn.Status,
		txn.Reference,
		txn.AdminNotes,
	)

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	var txn domain.Transaction
	var bookingID sql.NullString
	var processedAt sql.NullTime
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&txn.ID, &txn.UserID, &bookingID, &txn.Type, &txn.Amount,
		&txn.PaymentMethod, &txn.Status, &txn.Reference, &txn.AdminNotes,
		&txn.CreatedAt, &processedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	txn.BookingID = bookingID.String
	if processedAt.Valid {
		txn.ProcessedAt = processedAt.Time
	}

	return &txn, nil
}

// GetAllByUser retrieves all transactions belonging to a user.
func (r *TransactionRepository) GetAllByUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetPending retrieves all transactions awaiting review.
func (r *TransactionRepository) GetPending(ctx context.Context) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE status = $1 ORDER BY created_at ASC`

	rows, err := r.q.QueryContext(ctx, query, domain.TransactionStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// UpdateStatusIfPending transitions a transaction out of PENDING. The
// status guard is part of the UPDATE predicate: a concurrent or repeated
// review finds zero rows and applies nothing.
func (r *TransactionRepository) UpdateStatusIfPending(ctx context.Context, id string, status domain.TransactionStatus, notes string, processedAt time.Time) (bool, error) {
	query := `
		UPDATE transactions SET status = $1, admin_notes = $2, processed_at = $3
		WHERE id = $4 AND status = $5
	`

	result, err := r.q.ExecContext(ctx, query, status, notes, processedAt, id, domain.TransactionStatusPending)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	if rowsAffected == 0 {
		var exists bool
		err := r.q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM transactions WHERE id = $1)`, id).Scan(&exists)
		if err != nil {
			return false, err
		}
		if !exists {
			return false, repository.ErrNotFound
		}
		return false, nil
	}

	return true, nil
}

func scanTransactions(rows *sql.Rows) ([]*domain.Transaction, error) {
	var txns []*domain.Transaction
	for rows.Next() {
		var txn domain.Transaction
		var bookingID sql.NullString
		var processedAt sql.NullTime
		if err := rows.Scan(
			&txn.ID, &txn.UserID, &bookingID, &txn.Type, &txn.Amount,
			&txn.PaymentMethod, &txn.Status, &txn.Reference, &txn.AdminNotes,
			&txn.CreatedAt, &processedAt,
		); err != nil {
			return nil, err
		}
		txn.BookingID = bookingID.String
		if processedAt.Valid {
			txn.ProcessedAt = processedAt.Time
		}
		txns = append(txns, &txn)
	}
	return txns, rows.Err()
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
