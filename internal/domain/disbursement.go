package domain

import "time"

// Fund release percentages. The seed is paid when an admin releases it for an
// active campaign; the rest follows milestone verification.
const (
	SeedPercent      = 25
	MilestonePercent = 75
)

// SeedAmount returns the seed share of a campaign goal.
func SeedAmount(goal int64) int64 {
	return goal * SeedPercent / 100
}

// MilestoneReleaseAmount returns the share released when a milestone is verified.
func MilestoneReleaseAmount(target int64) int64 {
	return target * MilestonePercent / 100
}

// DisbursementKind distinguishes seed from milestone releases.
type DisbursementKind string

const (
	DisbursementSeed      DisbursementKind = "seed"
	DisbursementMilestone DisbursementKind = "milestone"
)

// Disbursement records funds moved from escrow to a charity's available balance.
type Disbursement struct {
	ID          string           `json:"id"`
	CampaignID  string           `json:"campaignId"`
	CharityID   string           `json:"charityId"`
	MilestoneID *string          `json:"milestoneId,omitempty"`
	Kind        DisbursementKind `json:"kind"`
	Amount      int64            `json:"amount"`
	ReleasedBy  string           `json:"releasedBy"`
	CreatedAt   time.Time        `json:"createdAt"`
}
