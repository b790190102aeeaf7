package service

import (
	"context"
	"errors"
	"time"

	"clearcause/internal/domain"
	"clearcause/internal/events"
)

const (
	defaultPaymentMethod = "card"
	maxDonationMessage   = 500
)

var paymentMethods = map[string]bool{
	"card":          true,
	"gcash":         true,
	"paymaya":       true,
	"bank_transfer": true,
}

// DonationInput is the donation form. Country is filled from the request, not
// the body.
type DonationInput struct {
	CampaignID    string `json:"campaignId"`
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"paymentMethod"`
	IsAnonymous   bool   `json:"isAnonymous"`
	Message       string `json:"message"`
	Country       string `json:"-"`
}

// DonationService records donations and settles their payment state.
type DonationService struct {
	Base
	donations domain.DonationRepository
	campaigns domain.CampaignRepository
}

func NewDonationService(donations domain.DonationRepository, campaigns domain.CampaignRepository, base Base) *DonationService {
	return &DonationService{Base: base, donations: donations, campaigns: campaigns}
}

// Create records a pending donation to an active campaign.
func (s *DonationService) Create(ctx context.Context, actor domain.Actor, in DonationInput) (*domain.Donation, error) {
	if err := requireRole(actor, domain.UserRoleDonor); err != nil {
		return nil, err
	}
	in.CampaignID = trim(in.CampaignID)
	in.Message = trim(in.Message)
	in.PaymentMethod = trim(in.PaymentMethod)
	if in.PaymentMethod == "" {
		in.PaymentMethod = defaultPaymentMethod
	}
	switch {
	case in.CampaignID == "":
		return nil, domain.Validation("campaignId is required")
	case in.Amount < domain.MinDonationAmount:
		return nil, domain.Validation("amount must be at least %d", domain.MinDonationAmount)
	case !paymentMethods[in.PaymentMethod]:
		return nil, domain.Validation("unsupported payment method %q", in.PaymentMethod)
	case len([]rune(in.Message)) > maxDonationMessage:
		return nil, domain.Validation("message must be at most %d characters", maxDonationMessage)
	}
	campaign, err := s.campaigns.GetByID(ctx, in.CampaignID)
	if err != nil {
		return nil, lookup(err, "campaign")
	}
	if campaign.Status != domain.CampaignActive {
		return nil, domain.Conflict(domain.ErrInvalidTransition, "campaign is not accepting donations")
	}
	userID := actor.UserID
	d := &domain.Donation{
		UserID:        &userID,
		CampaignID:    campaign.ID,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		IsAnonymous:   in.IsAnonymous,
		Message:       in.Message,
		DonorCountry:  in.Country,
	}
	if err := s.donations.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Complete settles a pending donation once payment is confirmed. Only an
// admin may settle. The campaign and charity totals move in the same
// transaction; completing twice is a conflict.
func (s *DonationService) Complete(ctx context.Context, actor domain.Actor, id, paymentReference string) (*domain.Donation, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if _, err := s.visible(ctx, actor, id); err != nil {
		return nil, err
	}
	paymentReference = trim(paymentReference)
	if paymentReference == "" {
		return nil, domain.Validation("paymentReference is required")
	}
	d, err := s.donations.Complete(ctx, id, paymentReference)
	if err != nil {
		return nil, settleError(err)
	}
	s.audit(ctx, actor, "donation.completed", "donation", d.ID, map[string]any{"amount": d.Amount, "campaignId": d.CampaignID})
	s.publish(ctx, events.DonationCompleted, map[string]any{
		"donationId": d.ID, "campaignId": d.CampaignID, "amount": d.Amount,
	})
	return d, nil
}

// Fail marks a pending donation failed.
func (s *DonationService) Fail(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Donation, error) {
	if _, err := s.visible(ctx, actor, id); err != nil {
		return nil, err
	}
	reason = trim(reason)
	if reason == "" {
		reason = "payment failed"
	}
	d, err := s.donations.MarkFailed(ctx, id, reason)
	if err != nil {
		return nil, settleError(err)
	}
	s.publish(ctx, events.DonationFailed, map[string]any{"donationId": d.ID, "campaignId": d.CampaignID, "reason": reason})
	return d, nil
}

// Get returns a donation to its donor or an admin.
func (s *DonationService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Donation, error) {
	return s.visible(ctx, actor, id)
}

// ListMine returns the caller's donations.
func (s *DonationService) ListMine(ctx context.Context, actor domain.Actor, page domain.Page) ([]domain.Donation, error) {
	if err := requireAuth(actor); err != nil {
		return nil, err
	}
	return s.donations.ListByUser(ctx, actor.UserID, page.Normalize())
}

// ListByCampaign returns the completed donations of a campaign with anonymous
// donors hidden.
func (s *DonationService) ListByCampaign(ctx context.Context, campaignID string, page domain.Page) ([]domain.Donation, error) {
	list, err := s.donations.ListByCampaign(ctx, campaignID, page.Normalize())
	if err != nil {
		return nil, err
	}
	out := make([]domain.Donation, 0, len(list))
	for _, d := range list {
		out = append(out, d.Public())
	}
	return out, nil
}

// ExpireStalePending fails donations left pending for longer than ttl.
func (s *DonationService) ExpireStalePending(ctx context.Context, ttl time.Duration) (int64, error) {
	if ttl <= 0 {
		return 0, nil
	}
	n, err := s.donations.FailStalePending(ctx, s.now().Add(-ttl))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.Logger.Info().Int64("count", n).Msg("stale pending donations failed")
	}
	return n, nil
}

// HasCompletedDonation reports whether userID completed a donation to campaignID.
func (s *DonationService) HasCompletedDonation(ctx context.Context, userID, campaignID string) (bool, error) {
	return s.donations.HasCompletedForCampaign(ctx, userID, campaignID)
}

// HasCompletedDonationToCharity reports whether userID completed a donation to
// any campaign of charityID.
func (s *DonationService) HasCompletedDonationToCharity(ctx context.Context, userID, charityID string) (bool, error) {
	return s.donations.HasCompletedForCharity(ctx, userID, charityID)
}

func (s *DonationService) visible(ctx context.Context, actor domain.Actor, id string) (*domain.Donation, error) {
	if err := requireAuth(actor); err != nil {
		return nil, err
	}
	d, err := s.donations.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "donation")
	}
	if !actor.IsAdmin() && (d.UserID == nil || *d.UserID != actor.UserID) {
		return nil, domain.NotFound("donation")
	}
	return d, nil
}

func settleError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return domain.Conflict(domain.ErrInvalidTransition, "donation is no longer pending")
	case errors.Is(err, domain.ErrNotFound):
		return domain.NotFound("donation")
	}
	return err
}
