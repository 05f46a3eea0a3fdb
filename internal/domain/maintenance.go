package domain

import "time"

// MaintenanceType represents the category of maintenance work.
type MaintenanceType string

const (
	MaintenanceTypeInspection MaintenanceType = "INSPECTION"
	MaintenanceTypeRepair     MaintenanceType = "REPAIR"
	MaintenanceTypeOverhaul   MaintenanceType = "OVERHAUL"
	MaintenanceTypeScheduled  MaintenanceType = "SCHEDULED"
)

// MaintenanceStatus represents the progress of a maintenance record.
type MaintenanceStatus string

const (
	MaintenanceStatusScheduled  MaintenanceStatus = "SCHEDULED"
	MaintenanceStatusInProgress MaintenanceStatus = "IN_PROGRESS"
	MaintenanceStatusCompleted  MaintenanceStatus = "COMPLETED"
)

// MaintenanceRecord represents one maintenance event for a helicopter.
type MaintenanceRecord struct {
	ID           string
	HelicopterID string
	Type         MaintenanceType
	Description  string
	Cost         float64
	PerformedAt  time.Time
	NextDueAt    time.Time
	Status       MaintenanceStatus
	CreatedAt    time.Time
}
