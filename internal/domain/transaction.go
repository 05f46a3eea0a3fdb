package domain

import "time"

// TransactionType represents the kind of financial event.
type TransactionType string

const (
	TransactionTypePayment    TransactionType = "PAYMENT"
	TransactionTypeRefund     TransactionType = "REFUND"
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
)

// TransactionStatus represents the lifecycle status of a transaction.
// Transitions are forward only; a terminal transaction is never reopened,
// corrections are made by appending an offsetting transaction.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusApproved  TransactionStatus = "APPROVED"
	TransactionStatusRejected  TransactionStatus = "REJECTED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// IsTerminal reports whether the status allows no further transitions.
func (s TransactionStatus) IsTerminal() bool {
	return s != TransactionStatusPending
}

// Transaction is one immutable entry in the financial ledger. Amount is
// signed: credits to the user balance are positive, debits negative.
type Transaction struct {
	ID            string
	UserID        string
	BookingID     string // Optional, set for payments and refunds.
	Type          TransactionType
	Amount        float64
	PaymentMethod PaymentMethod
	Status        TransactionStatus
	Reference     string
	AdminNotes    string
	CreatedAt     time.Time
	ProcessedAt   time.Time
}
