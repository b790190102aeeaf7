// Package events publishes domain events to RabbitMQ.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Routing keys of the events the platform emits.
const (
	CampaignStatusChanged = "campaign.status_changed"
	DonationCompleted     = "donation.completed"
	DonationFailed        = "donation.failed"
	CharityVerified       = "charity.verified"
	SeedReleased          = "disbursement.seed_released"
	MilestoneReviewed     = "milestone.reviewed"
	WithdrawalRequested   = "withdrawal.requested"
	WithdrawalUpdated     = "withdrawal.updated"
)

// Publisher is the interface implemented by types that can publish events.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, data any) error
	Close()
}

// Envelope wraps every published payload.
type Envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

// NewEnvelope stamps data with an id and the current time.
func NewEnvelope(routingKey string, data any) Envelope {
	return Envelope{
		ID:         uuid.NewString(),
		Type:       routingKey,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}
