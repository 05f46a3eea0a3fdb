package repository

import (
	"context"
	"time"

	"charter/internal/domain"
)

// MaintenanceRepository defines the persistence operations for
// helicopter maintenance records.
type MaintenanceRepository interface {
	// Create persists a new maintenance record.
	Create(ctx context.Context, rec *domain.MaintenanceRecord) error

	// GetByID retrieves a maintenance record by ID.
	GetByID(ctx context.Context, id string) (*domain.MaintenanceRecord, error)

	// GetAll retrieves all maintenance records.
	GetAll(ctx context.Context) ([]*domain.MaintenanceRecord, error)

	// GetAllByHelicopter retrieves the maintenance history for one
	// helicopter.
	GetAllByHelicopter(ctx context.Context, helicopterID string) ([]*domain.MaintenanceRecord, error)

	// GetDueBefore retrieves records whose next due date falls before
	// the given time and are not yet completed.
	GetDueBefore(ctx context.Context, before time.Time) ([]*domain.MaintenanceRecord, error)

	// UpdateStatus updates the status of a maintenance record.
	UpdateStatus(ctx context.Context, id string, status domain.MaintenanceStatus) error
}
