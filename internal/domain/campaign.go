package domain

import "time"

// CampaignStatus is the lifecycle state of a campaign.
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignPending   CampaignStatus = "pending"
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
	CampaignCancelled CampaignStatus = "cancelled"
	CampaignRejected  CampaignStatus = "rejected"
)

// CampaignTransitions lists the allowed next states for every state.
// completed and cancelled are terminal.
var CampaignTransitions = map[CampaignStatus][]CampaignStatus{
	CampaignDraft:     {CampaignPending, CampaignCancelled},
	CampaignPending:   {CampaignActive, CampaignRejected, CampaignDraft},
	CampaignActive:    {CampaignPaused, CampaignCompleted, CampaignCancelled},
	CampaignPaused:    {CampaignActive, CampaignCancelled},
	CampaignRejected:  {CampaignDraft},
	CampaignCompleted: {},
	CampaignCancelled: {},
}

// Valid reports whether s is a known campaign status.
func (s CampaignStatus) Valid() bool {
	_, ok := CampaignTransitions[s]
	return ok
}

// CanTransition reports whether a campaign may move from one status to another.
func CanTransition(from, to CampaignStatus) bool {
	for _, next := range CampaignTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Editable reports whether campaign details may still change.
func (s CampaignStatus) Editable() bool {
	return s == CampaignDraft || s == CampaignPending || s == CampaignRejected
}

// Campaign is a charity's fundraising project.
type Campaign struct {
	ID            string         `json:"id"`
	CharityID     string         `json:"charityId"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Category      string         `json:"category"`
	GoalAmount    int64          `json:"goalAmount"`
	CurrentAmount int64          `json:"currentAmount"`
	DonorsCount   int            `json:"donorsCount"`
	ImageURL      string         `json:"imageUrl,omitempty"`
	Status        CampaignStatus `json:"status"`
	StartDate     *time.Time     `json:"startDate,omitempty"`
	EndDate       *time.Time     `json:"endDate,omitempty"`
	SeedReleased  bool           `json:"seedReleased"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	Milestones    []Milestone    `json:"milestones,omitempty"`
}

// Progress returns funded percentage capped at 100.
func (c Campaign) Progress() int {
	if c.GoalAmount <= 0 {
		return 0
	}
	p := int(c.CurrentAmount * 100 / c.GoalAmount)
	if p > 100 {
		return 100
	}
	return p
}

// CampaignFilter narrows campaign listings.
type CampaignFilter struct {
	Status    CampaignStatus
	Category  string
	CharityID string
	Search    string
	Page
}

// MilestoneStatus is the proof/verification state of a milestone.
type MilestoneStatus string

const (
	MilestonePending        MilestoneStatus = "pending"
	MilestoneProofSubmitted MilestoneStatus = "proof_submitted"
	MilestoneVerified       MilestoneStatus = "verified"
	MilestoneRejected       MilestoneStatus = "rejected"
)

// Milestone is a sub-goal whose verified completion releases funds.
type Milestone struct {
	ID               string          `json:"id"`
	CampaignID       string          `json:"campaignId"`
	Title            string          `json:"title"`
	Description      string          `json:"description,omitempty"`
	TargetAmount     int64           `json:"targetAmount"`
	Position         int             `json:"position"`
	Status           MilestoneStatus `json:"status"`
	ProofURL         string          `json:"proofUrl,omitempty"`
	ProofDescription string          `json:"proofDescription,omitempty"`
	ReviewNotes      string          `json:"reviewNotes,omitempty"`
	VerifiedAt       *time.Time      `json:"verifiedAt,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// AcceptsProof reports whether a proof may be (re)submitted.
func (m Milestone) AcceptsProof() bool {
	return m.Status == MilestonePending || m.Status == MilestoneRejected
}
