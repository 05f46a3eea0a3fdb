package repository

import (
	"context"

	"charter/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// GetAll retrieves all bookings.
	GetAll(ctx context.Context) ([]*domain.Booking, error)

	// GetAllByUser retrieves all bookings belonging to a user.
	GetAllByUser(ctx context.Context, userID string) ([]*domain.Booking, error)

	// Update updates an existing booking.
	Update(ctx context.Context, booking *domain.Booking) error

	// MarkPaid marks a booking as paid with the given method and moves
	// it to CONFIRMED. Returns false (and no mutation) when the booking
	// is already paid.
	MarkPaid(ctx context.Context, id string, method domain.PaymentMethod) (bool, error)

	// ClearPaid clears the paid flag on a booking, used when refunding.
	ClearPaid(ctx context.Context, id string) error
}
