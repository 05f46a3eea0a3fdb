package repository

import (
	"context"

	"charter/internal/domain"
)

// HelicopterRepository defines the persistence operations for the fleet.
type HelicopterRepository interface {
	// Create adds a new helicopter.
	Create(ctx context.Context, h *domain.Helicopter) error

	// GetByID retrieves a helicopter by ID.
	GetByID(ctx context.Context, id string) (*domain.Helicopter, error)

	// GetAll retrieves all helicopters.
	GetAll(ctx context.Context) ([]*domain.Helicopter, error)

	// Update updates an existing helicopter.
	Update(ctx context.Context, h *domain.Helicopter) error

	// UpdateStatus updates the status of a helicopter.
	UpdateStatus(ctx context.Context, id string, status domain.HelicopterStatus) error
}
