package model

import (
	"time"
)

// Subscription plans
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// TenantSettings holds the quota limits derived from the tenant's plan.
// Values are computed and stored at the moment the plan changes, never
// recomputed on read.
type TenantSettings struct {
	MaxNotes int `json:"maxNotes"`
	MaxUsers int `json:"maxUsers"`
}

// Tenant represents an isolated organization. Users and notes of one tenant
// are invisible to every other tenant.
type Tenant struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(100);not null"`
	Plan      string         `json:"plan" gorm:"type:varchar(20);not null;default:'free'"`
	Settings  TenantSettings `json:"settings" gorm:"serializer:json;type:jsonb"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
