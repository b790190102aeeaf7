package domain

import (
	"encoding/json"
	"time"
)

// AuditLog is one recorded mutation shown in the admin UI.
type AuditLog struct {
	ID         string          `json:"id"`
	ActorID    string          `json:"actorId,omitempty"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	Details    json.RawMessage `json:"details,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// AuditFilter narrows audit log listings.
type AuditFilter struct {
	ActorID    string
	EntityType string
	EntityID   string
	Action     string
	Page
}
