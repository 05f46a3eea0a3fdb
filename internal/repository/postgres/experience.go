package postgres

import (
	"context"
	"database/sql"
	"errors"

	"charter/internal/domain"
	"charter/internal/repository"
)

// ExperienceRepository is a PostgreSQL implementation of
// repository.ExperienceRepository.
type ExperienceRepository struct {
	db *sql.DB
}

// NewExperienceRepository creates a new PostgreSQL experience repository.
func NewExperienceRepository(db *sql.DB) *ExperienceRepository {
	return &ExperienceRepository{db: db}
}

// Create adds a new experience.
func (r *ExperienceRepository) Create(ctx context.Context, exp *domain.Experience) error {
	query := `
		INSERT INTO experiences (id, name, description, destination_code, duration_minutes, price_per_seat, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		exp.ID, exp.Name, exp.Description, exp.DestinationCode,
		exp.DurationMinutes, exp.PricePerSeat, exp.Active,
	)
	return err
}

// GetByID retrieves an experience by ID.
func (r *ExperienceRepository) GetByID(ctx context.Context, id string) (*domain.Experience, error) {
	query := `
		SELECT id, name, description, destination_code, duration_minutes, price_per_seat, active
		FROM experiences WHERE id = $1
	`

	var exp domain.Experience
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&exp.ID, &exp.Name, &exp.Description, &exp.DestinationCode,
		&exp.DurationMinutes, &exp.PricePerSeat, &exp.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &exp, nil
}

// GetAll retrieves all experiences.
func (r *ExperienceRepository) GetAll(ctx context.Context) ([]*domain.Experience, error) {
	return r.list(ctx, `SELECT id, name, description, destination_code, duration_minutes, price_per_seat, active FROM experiences ORDER BY name`)
}

// GetActive retrieves all experiences currently offered.
func (r *ExperienceRepository) GetActive(ctx context.Context) ([]*domain.Experience, error) {
	return r.list(ctx, `SELECT id, name, description, destination_code, duration_minutes, price_per_seat, active FROM experiences WHERE active = TRUE ORDER BY name`)
}

// Update updates an existing experience.
func (r *ExperienceRepository) Update(ctx context.Context, exp *domain.Experience) error {
	query := `
		UPDATE experiences SET name = $1, description = $2, destination_code = $3,
			duration_minutes = $4, price_per_seat = $5, active = $6
		WHERE id = $7
	`

	result, err := r.db.ExecContext(ctx, query,
		exp.Name, exp.Description, exp.DestinationCode,
		exp.DurationMinutes, exp.PricePerSeat, exp.Active, exp.ID,
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

func (r *ExperienceRepository) list(ctx context.Context, query string) ([]*domain.Experience, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exps []*domain.Experience
	for rows.Next() {
		var exp domain.Experience
		if err := rows.Scan(
			&exp.ID, &exp.Name, &exp.Description, &exp.DestinationCode,
			&exp.DurationMinutes, &exp.PricePerSeat, &exp.Active,
		); err != nil {
			return nil, err
		}
		exps = append(exps, &exp)
	}
	return exps, rows.Err()
}
