package domain

// Experience represents a curated scenic flight package sold per seat.
type Experience struct {
	ID              string
	Name            string
	Description     string
	DestinationCode string
	DurationMinutes int
	PricePerSeat    float64
	Active          bool
}
