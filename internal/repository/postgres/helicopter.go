package postgres

import (
	"context"
	"database/sql"
	"errors"

	"charter/internal/domain"
	"charter/internal/repository"
)

// HelicopterRepository is a PostgreSQL implementation of
// repository.HelicopterRepository.
type HelicopterRepository struct {
	db *sql.DB
}

// NewHelicopterRepository creates a new PostgreSQL helicopter repository.
func NewHelicopterRepository(db *sql.DB) *HelicopterRepository {
	return &HelicopterRepository{db: db}
}

// Create adds a new helicopter.
func (r *HelicopterRepository) Create(ctx context.Context, h *domain.Helicopter) error {
	query := `
		INSERT INTO helicopters (id, registration, model, capacity, cruise_speed_km, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		h.ID, h.Registration, h.Model, h.Capacity, h.CruiseSpeedKm, h.Status,
	)
	return err
}

// GetByID retrieves a helicopter by ID.
func (r *HelicopterRepository) GetByID(ctx context.Context, id string) (*domain.Helicopter, error) {
	query := `
		SELECT id, registration, model, capacity, cruise_speed_km, status
		FROM helicopters WHERE id = $1
	`

	var h domain.Helicopter
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&h.ID, &h.Registration, &h.Model, &h.Capacity, &h.CruiseSpeedKm, &h.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// GetAll retrieves all helicopters.
func (r *HelicopterRepository) GetAll(ctx context.Context) ([]*domain.Helicopter, error) {
	query := `
		SELECT id, registration, model, capacity, cruise_speed_km, status
		FROM helicopters ORDER BY registration
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fleet []*domain.Helicopter
	for rows.Next() {
		var h domain.Helicopter
		if err := rows.Scan(&h.ID, &h.Registration, &h.Model, &h.Capacity, &h.CruiseSpeedKm, &h.Status); err != nil {
			return nil, err
		}
		fleet = append(fleet, &h)
	}
	return fleet, rows.Err()
}

// Update updates an existing helicopter.
func (r *HelicopterRepository) Update(ctx context.Context, h *domain.Helicopter) error {
	query := `
		UPDATE helicopters SET registration = $1, model = $2, capacity = $3,
			cruise_speed_km = $4, status = $5
		WHERE id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		h.Registration, h.Model, h.Capacity, h.CruiseSpeedKm, h.Status, h.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// UpdateStatus updates the status of a helicopter.
func (r *HelicopterRepository) UpdateStatus(ctx context.Context, id string, status domain.HelicopterStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE helicopters SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
