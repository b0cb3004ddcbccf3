package model

import (
	"time"
)

// User roles within a tenant. Role is fixed at creation time: registration
// creates the founding admin, invites choose admin or user.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents the user model stored in the database. Every user belongs
// to exactly one tenant; email is unique across all tenants.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"type:varchar(255)"`
	Name      string    `json:"name" gorm:"type:varchar(100)"`
	TenantID  uint      `json:"tenant_id" gorm:"index;not null"`
	Role      string    `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidRole reports whether role is one of the recognized roles
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
