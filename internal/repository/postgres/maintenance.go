package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"charter/internal/domain"
	"charter/internal/repository"
)

// MaintenanceRepository is a PostgreSQL implementation of
// repository.MaintenanceRepository.
type MaintenanceRepository struct {
	db *sql.DB
}

// NewMaintenanceRepository creates a new PostgreSQL maintenance repository.
func NewMaintenanceRepository(db *sql.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

const maintenanceColumns = `
	id, helicopter_id, type, description, cost, performed_at, next_due_at, status, created_at
`

// Create persists a new maintenance record.
func (r *MaintenanceRepository) Create(ctx context.Context, rec *domain.MaintenanceRecord) error {
	query := `
		INSERT INTO maintenance_records (id, helicopter_id, type, description, cost, performed_at, next_due_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.HelicopterID, rec.Type, rec.Description, rec.Cost,
		nullTime(rec.PerformedAt), nullTime(rec.NextDueAt), rec.Status,
	)
	return err
}

// GetByID retrieves a maintenance record by ID.
func (r *MaintenanceRepository) GetByID(ctx context.Context, id string) (*domain.MaintenanceRecord, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_records WHERE id = $1`

	var rec domain.MaintenanceRecord
	var performedAt, nextDueAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.HelicopterID, &rec.Type, &rec.Description, &rec.Cost,
		&performedAt, &nextDueAt, &rec.Status, &rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if performedAt.Valid {
		rec.PerformedAt = performedAt.Time
	}
	if nextDueAt.Valid {
		rec.NextDueAt = nextDueAt.Time
	}

	return &rec, nil
}

// GetAll retrieves all maintenance records.
func (r *MaintenanceRepository) GetAll(ctx context.Context) ([]*domain.MaintenanceRecord, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_records ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMaintenanceRecords(rows)
}

// GetAllByHelicopter retrieves the maintenance history for one helicopter.
func (r *MaintenanceRepository) GetAllByHelicopter(ctx context.Context, helicopterID string) ([]*domain.MaintenanceRecord, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_records WHERE helicopter_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, helicopterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMaintenanceRecords(rows)
}

// GetDueBefore retrieves records due before the given time that are not
// yet completed.
func (r *MaintenanceRepository) GetDueBefore(ctx context.Context, before time.Time) ([]*domain.MaintenanceRecord, error) {
	query := `
		SELECT ` + maintenanceColumns + ` FROM maintenance_records
		WHERE next_due_at IS NOT NULL AND next_due_at < $1 AND status != $2
		ORDER BY next_due_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, before, domain.MaintenanceStatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMaintenanceRecords(rows)
}

// UpdateStatus updates the status of a maintenance record.
func (r *MaintenanceRepository) UpdateStatus(ctx context.Context, id string, status domain.MaintenanceStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE maintenance_records SET status = $1 WHERE id = $2`, status, id)
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

func scanMaintenanceRecords(rows *sql.Rows) ([]*domain.MaintenanceRecord, error) {
	var recs []*domain.MaintenanceRecord
	for rows.Next() {
		var rec domain.MaintenanceRecord
		var performedAt, nextDueAt sql.NullTime
		if err := rows.Scan(
			&rec.ID, &rec.HelicopterID, &rec.Type, &rec.Description, &rec.Cost,
			&performedAt, &nextDueAt, &rec.Status, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		if performedAt.Valid {
			rec.PerformedAt = performedAt.Time
		}
		if nextDueAt.Valid {
			rec.NextDueAt = nextDueAt.Time
		}
		recs = append(recs, &rec)
	}
	return recs, rows.Err()
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
