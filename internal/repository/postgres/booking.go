package postgres

import (
	"context"
	"database/sql"
	"errors"

	"charter/internal/domain"
	"charter/internal/repository"
)

// BookingRepository is a PostgreSQL implementation of repository.BookingRepository.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

// NewBookingRepositoryWithTx creates a booking repository using a transaction.
func NewBookingRepositoryWithTx(tx *sql.Tx) *BookingRepository {
	return &BookingRepository{q: tx}
}

const bookingColumns = `
	id, user_id, helicopter_id, pilot_id, experience_id,
	from_code, to_code, passengers, round_trip, flight_date,
	price, status, paid, payment_method, created_at, cancelled_at, cancel_reason
`

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (
			id, user_id, helicopter_id, pilot_id, experience_id,
			from_code, to_code, passengers, round_trip, flight_date,
			price, status, paid, payment_method
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.q.ExecContext(ctx, query,
		booking.ID,
		booking.UserID,
		booking.HelicopterID,
		booking.PilotID,
		booking.ExperienceID,
		booking.FromCode,
		booking.ToCode,
		booking.Passengers,
		booking.RoundTrip,
		booking.FlightDate,
		booking.Price,
		booking.Status,
		booking.Paid,
		booking.PaymentMethod,
	)

	return err
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var b domain.Booking
	var cancelledAt sql.NullTime
	var cancelReason, paymentMethod sql.NullString
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.UserID, &b.HelicopterID, &b.PilotID, &b.ExperienceID,
		&b.FromCode, &b.ToCode, &b.Passengers, &b.RoundTrip, &b.FlightDate,
		&b.Price, &b.Status, &b.Paid, &paymentMethod, &b.CreatedAt,
		&cancelledAt, &cancelReason,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if cancelledAt.Valid {
		b.CancelledAt = cancelledAt.Time
	}
	b.CancelReason = cancelReason.String
	b.PaymentMethod = domain.PaymentMethod(paymentMethod.String)

	return &b, nil
}

// GetAll retrieves all bookings.
func (r *BookingRepository) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetAllByUser retrieves all bookings belonging to a user.
func (r *BookingRepository) GetAllByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Update updates an existing booking.
func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	query := `
		UPDATE bookings SET
			helicopter_id = $1, pilot_id = $2, passengers = $3,
			round_trip = $4, flight_date = $5, price = $6, status = $7,
			paid = $8, payment_method = $9, cancelled_at = $10, cancel_reason = $11
		WHERE id = $12
	`

	var cancelledAt sql.NullTime
	if !booking.CancelledAt.IsZero() {
		cancelledAt = sql.NullTime{Time: booking.CancelledAt, Valid: true}
	}

	result, err := r.q.ExecContext(ctx, query,
		booking.HelicopterID,
		booking.PilotID,
		booking.Passengers,
		booking.RoundTrip,
		booking.FlightDate,
		booking.Price,
		booking.Status,
		booking.Paid,
		booking.PaymentMethod,
		cancelledAt,
		booking.CancelReason,
		booking.ID,
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

// MarkPaid marks a booking as paid and confirmed. The paid guard is part
// of the UPDATE predicate so the same booking can never be paid twice.
func (r *BookingRepository) MarkPaid(ctx context.Context, id string, method domain.PaymentMethod) (bool, error) {
	query := `
		UPDATE bookings SET paid = TRUE, payment_method = $1, status = $2
		WHERE id = $3 AND paid = FALSE
	`

	result, err := r.q.ExecContext(ctx, query, method, domain.BookingStatusConfirmed, id)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	if rowsAffected == 0 {
		var exists bool
		err := r.q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM bookings WHERE id = $1)`, id).Scan(&exists)
		if err != nil {
			return false, err
		}
		if !exists {
			return false, repository.ErrNotFound
		}
		return false, nil
	}

	return true, nil
}

// ClearPaid clears the paid flag on a booking, used when refunding.
func (r *BookingRepository) ClearPaid(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `UPDATE bookings SET paid = FALSE WHERE id = $1`, id)
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

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	for rows.Next() {
		var b domain.Booking
		var cancelledAt sql.NullTime
		var cancelReason, paymentMethod sql.NullString
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.HelicopterID, &b.PilotID, &b.ExperienceID,
			&b.FromCode, &b.ToCode, &b.Passengers, &b.RoundTrip, &b.FlightDate,
			&b.Price, &b.Status, &b.Paid, &paymentMethod, &b.CreatedAt,
			&cancelledAt, &cancelReason,
		); err != nil {
			return nil, err
		}
		if cancelledAt.Valid {
			b.CancelledAt = cancelledAt.Time
		}
		b.CancelReason = cancelReason.String
		b.PaymentMethod = domain.PaymentMethod(paymentMethod.String)
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}
