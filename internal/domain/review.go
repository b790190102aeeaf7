package domain

import "time"

// ReviewStatus is the moderation state shared by reviews and feedback.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// Valid reports whether s is a known moderation status.
func (s ReviewStatus) Valid() bool {
	return s == ReviewPending || s == ReviewApproved || s == ReviewRejected
}

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 2000
)

// CampaignReview is a donor's rating of a campaign they funded.
type CampaignReview struct {
	ID         string       `json:"id"`
	CampaignID string       `json:"campaignId"`
	UserID     string       `json:"userId"`
	UserName   string       `json:"userName,omitempty"`
	Rating     int          `json:"rating"`
	Comment    string       `json:"comment"`
	Status     ReviewStatus `json:"status"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// CharityFeedback is a donor's rating of a charity they funded.
type CharityFeedback struct {
	ID        string       `json:"id"`
	CharityID string       `json:"charityId"`
	UserID    string       `json:"userId"`
	UserName  string       `json:"userName,omitempty"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment"`
	Status    ReviewStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// RatingSummary aggregates approved ratings.
type RatingSummary struct {
	Average float64     `json:"average"`
	Count   int         `json:"count"`
	ByStar  map[int]int `json:"byStar"`
}

// ReviewFilter narrows review and feedback listings.
type ReviewFilter struct {
	TargetID string
	UserID   string
	Status   ReviewStatus
	Page
}
