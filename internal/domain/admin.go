package domain

import "time"

type AdminRole string

const (
	RoleSuperAdmin AdminRole = "super_admin"
	RoleAdmin      AdminRole = "admin"
	RoleManager    AdminRole = "manager"
)

// Admin is an operator account for the back-office. IsActive gates login.
type Admin struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         AdminRole `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (r AdminRole) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleManager:
		return true
	}
	return false
}
