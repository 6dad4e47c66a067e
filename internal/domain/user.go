package domain

import "time"

// Role distinguishes regular shoppers from catalog administrators.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the domain model for storefront accounts.
type User struct {
	ID           string
	Email        string
	Name         *string
	PasswordHash string
	Role         Role
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
