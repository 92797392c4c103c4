package domain

import "time"

// Idempotency remembers the outcome of a create request, keyed by
// (client_id, scope, key), so that a retried request with the same
// Idempotency-Key returns the original resource instead of creating another.
//
// Scope is the route the key was used on (e.g. "/api/chat"); ResourceID is the
// id of the resource the first request created.
type Idempotency struct {
	ID         string    `gorm:"type:char(36);primaryKey"`
	ClientID   string    `gorm:"size:128;not null;uniqueIndex:ux_client_scope_key,priority:1"`
	Scope      string    `gorm:"size:128;not null;uniqueIndex:ux_client_scope_key,priority:2"`
	Key        string    `gorm:"size:200;not null;uniqueIndex:ux_client_scope_key,priority:3"`
	ResourceID string    `gorm:"size:64;not null"`
	Status     int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime"`
	ExpiresAt  time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
