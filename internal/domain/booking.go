package domain

import "time"

// BookingStatus represents the current status of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// PaymentMethod represents how a booking is paid.
type PaymentMethod string

const (
	PaymentMethodBalance PaymentMethod = "BALANCE"
	PaymentMethodCard    PaymentMethod = "CARD"
	PaymentMethodCash    PaymentMethod = "CASH"
)

// Booking represents a charter reservation.
type Booking struct {
	ID            string
	UserID        string
	HelicopterID  string
	PilotID       string // Optional until a pilot is assigned.
	ExperienceID  string // Set when the booking is for a scenic package.
	FromCode      string
	ToCode        string
	Passengers    int
	RoundTrip     bool
	FlightDate    time.Time
	Price         float64
	Status        BookingStatus
	Paid          bool
	PaymentMethod PaymentMethod
	CreatedAt     time.Time
	CancelledAt   time.Time
	CancelReason  string
}
