package models

import (
	"time"
)

// RoleType defines the user role type
type RoleType string

const (
	RoleSuperuser RoleType = "SUPERUSER"
	RoleTeacher   RoleType = "TEACHER"
	RoleStudent   RoleType = "STUDENT"
)

// User defines the credential record based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Email     string    `json:"email" db:"email" example:"admin@campus.edu"`
	Password  string    `json:"-" db:"password"` // hashed, excluded from JSON
	FirstName string    `json:"firstName" db:"first_name" example:"Jane"`
	LastName  string    `json:"lastName" db:"last_name" example:"Doe"`
	Role      RoleType  `json:"role" db:"role" example:"TEACHER"`
	IsActive  bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// RefreshToken represents a stored refresh token for a user session
type RefreshToken struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
