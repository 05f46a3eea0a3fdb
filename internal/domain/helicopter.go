package domain

// HelicopterStatus represents the operational status of a helicopter.
type HelicopterStatus string

const (
	HelicopterStatusAvailable   HelicopterStatus = "AVAILABLE"
	HelicopterStatusChartered   HelicopterStatus = "CHARTERED"
	HelicopterStatusMaintenance HelicopterStatus = "MAINTENANCE"
)

// Helicopter represents an aircraft in the charter fleet.
type Helicopter struct {
	ID            string
	Registration  string
	Model         string
	Capacity      int // Passenger seats, excluding the pilot.
	CruiseSpeedKm float64
	Status        HelicopterStatus
}
