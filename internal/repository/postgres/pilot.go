package postgres

import (
	"context"
	"database/sql"
	"errors"

	"charter/internal/domain"
	"charter/internal/repository"
)

// PilotRepository is a PostgreSQL implementation of repository.PilotRepository.
type PilotRepository struct {
	db *sql.DB
}

// NewPilotRepository creates a new PostgreSQL pilot repository.
func NewPilotRepository(db *sql.DB) *PilotRepository {
	return &PilotRepository{db: db}
}

// Create adds a new pilot.
func (r *PilotRepository) Create(ctx context.Context, pilot *domain.Pilot) error {
	query := `
		INSERT INTO pilots (id, name, license_number, flight_hours, status)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		pilot.ID, pilot.Name, pilot.LicenseNumber, pilot.FlightHours, pilot.Status,
	)
	return err
}

// GetByID retrieves a pilot by ID.
func (r *PilotRepository) GetByID(ctx context.Context, id string) (*domain.Pilot, error) {
	query := `
		SELECT id, name, license_number, flight_hours, status
		FROM pilots WHERE id = $1
	`

	var pilot domain.Pilot
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&pilot.ID, &pilot.Name, &pilot.LicenseNumber, &pilot.FlightHours, &pilot.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pilot, nil
}

// GetAll retrieves all pilots.
func (r *PilotRepository) GetAll(ctx context.Context) ([]*domain.Pilot, error) {
	query := `
		SELECT id, name, license_number, flight_hours, status
		FROM pilots ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pilots []*domain.Pilot
	for rows.Next() {
		var pilot domain.Pilot
		if err := rows.Scan(&pilot.ID, &pilot.Name, &pilot.LicenseNumber, &pilot.FlightHours, &pilot.Status); err != nil {
			return nil, err
		}
		pilots = append(pilots, &pilot)
	}
	return pilots, rows.Err()
}

// Update updates an existing pilot.
func (r *PilotRepository) Update(ctx context.Context, pilot *domain.Pilot) error {
	query := `
		UPDATE pilots SET name = $1, license_number = $2, flight_hours = $3, status = $4
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		pilot.Name, pilot.LicenseNumber, pilot.FlightHours, pilot.Status, pilot.ID,
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

// UpdateStatus updates the duty status of a pilot.
func (r *PilotRepository) UpdateStatus(ctx context.Context, id string, status domain.PilotStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE pilots SET status = $1 WHERE id = $2`, status, id)
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
