package domain

import (
	"context"
	"time"
)

// UserRepository defines access methods for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, id, fullName, avatarURL string) (*User, error)
	SetRole(ctx context.Context, id string, role UserRole) error
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context, filter UserFilter) ([]User, error)
}

// CharityRepository handles charity persistence.
type CharityRepository interface {
	Create(ctx context.Context, charity *Charity) error
	GetByID(ctx context.Context, id string) (*Charity, error)
	GetByUserID(ctx context.Context, userID string) (*Charity, error)
	List(ctx context.Context, filter CharityFilter) ([]Charity, error)
	Update(ctx context.Context, charity *Charity) error
	SetVerification(ctx context.Context, id string, status VerificationStatus, notes string) (*Charity, error)
}

// CampaignRepository handles campaigns and their milestones.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *Campaign) error
	GetByID(ctx context.Context, id string) (*Campaign, error)
	List(ctx context.Context, filter CampaignFilter) ([]Campaign, error)
	Update(ctx context.Context, campaign *Campaign) error
	// UpdateStatus moves a campaign only if it is still in from; otherwise ErrConflict.
	UpdateStatus(ctx context.Context, id string, from, to CampaignStatus) error
	Delete(ctx context.Context, id string) error
	ListEndedActive(ctx context.Context, now time.Time) ([]Campaign, error)
	ListMilestones(ctx context.Context, campaignID string) ([]Milestone, error)
	GetMilestone(ctx context.Context, id string) (*Milestone, error)
	SubmitMilestoneProof(ctx context.Context, id, proofURL, description string) (*Milestone, error)
}

// DonationRepository handles donation persistence.
type DonationRepository interface {
	Create(ctx context.Context, donation *Donation) error
	GetByID(ctx context.Context, id string) (*Donation, error)
	// Complete settles a pending donation and bumps campaign and charity totals atomically.
	Complete(ctx context.Context, id, paymentReference string) (*Donation, error)
	MarkFailed(ctx context.Context, id, reason string) (*Donation, error)
	ListByUser(ctx context.Context, userID string, page Page) ([]Donation, error)
	ListByCampaign(ctx context.Context, campaignID string, page Page) ([]Donation, error)
	HasCompletedForCampaign(ctx context.Context, userID, campaignID string) (bool, error)
	HasCompletedForCharity(ctx context.Context, userID, charityID string) (bool, error)
	FailStalePending(ctx context.Context, before time.Time) (int64, error)
}

// ReviewRepository handles campaign reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *CampaignReview) error
	GetByID(ctx context.Context, id string) (*CampaignReview, error)
	Exists(ctx context.Context, campaignID, userID string) (bool, error)
	List(ctx context.Context, filter ReviewFilter) ([]CampaignReview, error)
	Update(ctx context.Context, id string, rating int, comment string) (*CampaignReview, error)
	SetStatus(ctx context.Context, id string, status ReviewStatus) (*CampaignReview, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, campaignID string) (*RatingSummary, error)
}

// FeedbackRepository handles charity feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *CharityFeedback) error
	GetByID(ctx context.Context, id string) (*CharityFeedback, error)
	Exists(ctx context.Context, charityID, userID string) (bool, error)
	List(ctx context.Context, filter ReviewFilter) ([]CharityFeedback, error)
	Update(ctx context.Context, id string, rating int, comment string) (*CharityFeedback, error)
	SetStatus(ctx context.Context, id string, status ReviewStatus) (*CharityFeedback, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, charityID string) (*RatingSummary, error)
}

// WithdrawalRepository handles withdrawals and the balance they move.
type WithdrawalRepository interface {
	// Create debits the charity balance and inserts the withdrawal in one
	// transaction; ErrInsufficientFunds when the balance no longer covers it.
	Create(ctx context.Context, withdrawal *WithdrawalTransaction) error
	GetByID(ctx context.Context, id string) (*WithdrawalTransaction, error)
	List(ctx context.Context, filter WithdrawalFilter) ([]WithdrawalTransaction, error)
	// Transition moves a withdrawal from -> to, refunding the balance when to refunds.
	Transition(ctx context.Context, id string, from, to WithdrawalStatus, failureReason string) (*WithdrawalTransaction, error)
}

// DisbursementRepository records fund releases.
type DisbursementRepository interface {
	// ReleaseSeed inserts the seed disbursement, flags the campaign and credits
	// the charity; ErrAlreadyReleased if a seed exists.
	ReleaseSeed(ctx context.Context, d *Disbursement) error
	// ReleaseMilestone verifies the milestone and credits the charity;
	// ErrAlreadyReleased if the milestone was already paid.
	ReleaseMilestone(ctx context.Context, d *Disbursement, notes string) (*Milestone, error)
	RejectMilestone(ctx context.Context, milestoneID, notes string) (*Milestone, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]Disbursement, error)
}

// AuditRepository stores audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *AuditLog) error
	List(ctx context.Context, filter AuditFilter) ([]AuditLog, error)
}

// AnalyticsRepository computes dashboard aggregates.
type AnalyticsRepository interface {
	PlatformStats(ctx context.Context) (*PlatformStats, error)
	CharityStats(ctx context.Context, charityID string) (*CharityStats, error)
}
