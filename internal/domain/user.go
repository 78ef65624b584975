package domain

import "time"

// Role enumerates account roles carried by resolved identities.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the stored account record: credential plus role. It is the single
// source of truth for both password verification and token resolution.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
