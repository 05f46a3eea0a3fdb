package domain

import "time"

// Role represents the access level of a user.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RolePilot    Role = "PILOT"
	RoleAdmin    Role = "ADMIN"
)

// User represents an account holder in the system.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	Balance      float64
	CreatedAt    time.Time
}
