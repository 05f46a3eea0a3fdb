package repository

import (
	"context"

	"charter/internal/domain"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// Create adds a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetAll retrieves all users.
	GetAll(ctx context.Context) ([]*domain.User, error)

	// AdjustBalance atomically applies a signed delta to the user's
	// balance. Returns false (and no mutation) when the delta would
	// take the balance below zero; the guard is evaluated by the
	// storage engine, not read-then-write.
	AdjustBalance(ctx context.Context, id string, delta float64) (bool, error)

	// GetBalance retrieves the current balance for a user.
	GetBalance(ctx context.Context, id string) (float64, error)
}
