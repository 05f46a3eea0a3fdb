package repository

import (
	"context"

	"charter/internal/domain"
)

// PilotRepository defines the persistence operations for pilots.
type PilotRepository interface {
	// Create adds a new pilot.
	Create(ctx context.Context, pilot *domain.Pilot) error

	// GetByID retrieves a pilot by ID.
	GetByID(ctx context.Context, id string) (*domain.Pilot, error)

	// GetAll retrieves all pilots.
	GetAll(ctx context.Context) ([]*domain.Pilot, error)

	// Update updates an existing pilot.
	Update(ctx context.Context, pilot *domain.Pilot) error

	// UpdateStatus updates the duty status of a pilot.
	UpdateStatus(ctx context.Context, id string, status domain.PilotStatus) error
}
