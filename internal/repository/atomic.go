package repository

import "context"

// LedgerTx exposes transaction-scoped repositories for the stores a
// ledger operation may touch. Every write made through it belongs to the
// same atomic unit.
type LedgerTx interface {
	Users() UserRepository
	Bookings() BookingRepository
	Transactions() TransactionRepository
}

// Atomic runs a function inside a storage transaction. If fn returns an
// error the transaction is rolled back and nothing is applied; otherwise
// all writes commit together. Balance mutations and their matching
// transaction records must always share one unit.
type Atomic interface {
	WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error
}
