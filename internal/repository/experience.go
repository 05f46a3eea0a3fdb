package repository

import (
	"context"

	"charter/internal/domain"
)

// ExperienceRepository defines the persistence operations for scenic
// flight packages.
type ExperienceRepository interface {
	// Create adds a new experience.
	Create(ctx context.Context, exp *domain.Experience) error

	// GetByID retrieves an experience by ID.
	GetByID(ctx context.Context, id string) (*domain.Experience, error)

	// GetAll retrieves all experiences.
	GetAll(ctx context.Context) ([]*domain.Experience, error)

	// GetActive retrieves all experiences currently offered.
	GetActive(ctx context.Context) ([]*domain.Experience, error)

	// Update updates an existing experience.
	Update(ctx context.Context, exp *domain.Experience) error
}
