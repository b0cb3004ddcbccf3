package model

import (
	"time"
)

// Content limits for notes
const (
	MaxTitleLength   = 200
	MaxContentLength = 50000
	MaxTagsPerNote   = 10
	MaxTagLength     = 30
)

// Note represents a note owned by a tenant. Notes are only ever read or
// mutated through queries that filter on TenantID, so a note is unreachable
// from outside its tenant.
type Note struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"type:varchar(200);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Tags      []string  `json:"tags" gorm:"serializer:json;type:jsonb"`
	TenantID  uint      `json:"tenant_id" gorm:"index;not null"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	IsPinned  bool      `json:"is_pinned" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
