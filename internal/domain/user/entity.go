package user

import (
	"time"
)

// Role separates administrators from regular employees.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

type User struct {
	ID           string
	Name         string
	Username     string
	PasswordHash string
	Role         Role
	Department   string
	Phone        *string
	Email        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user holds the administrator role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
