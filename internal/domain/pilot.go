package domain

// PilotStatus represents the duty status of a pilot.
type PilotStatus string

const (
	PilotStatusActive   PilotStatus = "ACTIVE"
	PilotStatusOffDuty  PilotStatus = "OFF_DUTY"
	PilotStatusGrounded PilotStatus = "GROUNDED"
)

// Pilot represents a licensed pilot on the roster.
type Pilot struct {
	ID            string
	Name          string
	LicenseNumber string
	FlightHours   float64
	Status        PilotStatus
}
