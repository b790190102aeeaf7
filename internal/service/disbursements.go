package service

import (
	"context"
	"errors"

	"clearcause/internal/domain"
	"clearcause/internal/events"
)

// DisbursementService releases escrowed funds to charities: the seed share
// when a campaign goes live and the milestone share once proof is verified.
type DisbursementService struct {
	Base
	disbursements domain.DisbursementRepository
	campaigns     domain.CampaignRepository
	charities     domain.CharityRepository
}

func NewDisbursementService(disbursements domain.DisbursementRepository, campaigns domain.CampaignRepository, charities domain.CharityRepository, base Base) *DisbursementService {
	return &DisbursementService{Base: base, disbursements: disbursements, campaigns: campaigns, charities: charities}
}

// ReleaseSeedFunds pays SeedPercent of the goal of an active campaign to its
// approved charity. A campaign is seeded at most once.
func (s *DisbursementService) ReleaseSeedFunds(ctx context.Context, actor domain.Actor, campaignID string) (*domain.Disbursement, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	c, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, lookup(err, "campaign")
	}
	if c.SeedReleased {
		return nil, domain.Conflict(domain.ErrAlreadyReleased, "seed funds already released for this campaign")
	}
	if c.Status != domain.CampaignActive {
		return nil, domain.Conflict(domain.ErrInvalidTransition, "seed funds can only be released for active campaigns")
	}
	charity, err := s.charities.GetByID(ctx, c.CharityID)
	if err != nil {
		return nil, lookup(err, "charity")
	}
	if !charity.IsApproved() {
		return nil, domain.Forbidden("charity is not verified")
	}
	d := &domain.Disbursement{
		CampaignID: c.ID,
		CharityID:  charity.ID,
		Kind:       domain.DisbursementSeed,
		Amount:     domain.SeedAmount(c.GoalAmount),
		ReleasedBy: actor.UserID,
	}
	if err := s.disbursements.ReleaseSeed(ctx, d); err != nil {
		if errors.Is(err, domain.ErrAlreadyReleased) {
			return nil, domain.Conflict(domain.ErrAlreadyReleased, "seed funds already released for this campaign")
		}
		return nil, err
	}
	s.audit(ctx, actor, "disbursement.seed_released", "campaign", c.ID, map[string]any{"amount": d.Amount, "charityId": d.CharityID})
	s.publish(ctx, events.SeedReleased, map[string]any{"campaignId": c.ID, "charityId": d.CharityID, "amount": d.Amount})
	return d, nil
}

// SubmitMilestoneProof attaches proof to a pending or rejected milestone of
// the caller's campaign.
func (s *DisbursementService) SubmitMilestoneProof(ctx context.Context, actor domain.Actor, milestoneID, proofURL, description string) (*domain.Milestone, error) {
	if err := requireRole(actor, domain.UserRoleCharity); err != nil {
		return nil, err
	}
	proofURL = trim(proofURL)
	description = trim(description)
	if proofURL == "" {
		return nil, domain.Validation("proofUrl is required")
	}
	if err := validateURL("proofUrl", proofURL); err != nil {
		return nil, err
	}
	m, err := s.campaigns.GetMilestone(ctx, milestoneID)
	if err != nil {
		return nil, lookup(err, "milestone")
	}
	c, err := s.campaigns.GetByID(ctx, m.CampaignID)
	if err != nil {
		return nil, lookup(err, "campaign")
	}
	charity, err := s.charities.GetByID(ctx, c.CharityID)
	if err != nil {
		return nil, lookup(err, "charity")
	}
	if charity.UserID != actor.UserID {
		return nil, domain.Forbidden("you do not own this campaign")
	}
	if !m.AcceptsProof() {
		return nil, domain.Conflict(domain.ErrInvalidTransition, "milestone is not awaiting proof")
	}
	updated, err := s.campaigns.SubmitMilestoneProof(ctx, milestoneID, proofURL, description)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return nil, domain.Conflict(domain.ErrInvalidTransition, "milestone is not awaiting proof")
		}
		return nil, err
	}
	s.audit(ctx, actor, "milestone.proof_submitted", "milestone", milestoneID, map[string]any{"proofUrl": proofURL})
	return updated, nil
}

// ReviewMilestone verifies or rejects submitted proof. Verification pays
// MilestonePercent of the milestone target, once.
func (s *DisbursementService) ReviewMilestone(ctx context.Context, actor domain.Actor, milestoneID string, approve bool, notes string) (*domain.Milestone, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	notes = trim(notes)
	if !approve && notes == "" {
		return nil, domain.Validation("notes are required when rejecting proof")
	}
	m, err := s.campaigns.GetMilestone(ctx, milestoneID)
	if err != nil {
		return nil, lookup(err, "milestone")
	}
	if m.Status == domain.MilestoneVerified {
		return nil, domain.Conflict(domain.ErrAlreadyReleased, "milestone funds already released")
	}
	if m.Status != domain.MilestoneProofSubmitted {
		return nil, domain.Conflict(domain.ErrInvalidTransition, "milestone has no proof awaiting review")
	}

	var updated *domain.Milestone
	if approve {
		c, err := s.campaigns.GetByID(ctx, m.CampaignID)
		if err != nil {
			return nil, lookup(err, "campaign")
		}
		id := m.ID
		d := &domain.Disbursement{
			CampaignID:  c.ID,
			CharityID:   c.CharityID,
			MilestoneID: &id,
			Kind:        domain.DisbursementMilestone,
			Amount:      domain.MilestoneReleaseAmount(m.TargetAmount),
			ReleasedBy:  actor.UserID,
		}
		updated, err = s.disbursements.ReleaseMilestone(ctx, d, notes)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyReleased) {
				return nil, domain.Conflict(domain.ErrAlreadyReleased, "milestone funds already released")
			}
			return nil, err
		}
		s.audit(ctx, actor, "milestone.verified", "milestone", m.ID, map[string]any{"amount": d.Amount, "campaignId": c.ID})
	} else {
		updated, err = s.disbursements.RejectMilestone(ctx, m.ID, notes)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) {
				return nil, domain.Conflict(domain.ErrInvalidTransition, "milestone has no proof awaiting review")
			}
			return nil, err
		}
		s.audit(ctx, actor, "milestone.rejected", "milestone", m.ID, map[string]any{"notes": notes})
	}
	s.publish(ctx, events.MilestoneReviewed, map[string]any{
		"milestoneId": m.ID, "campaignId": m.CampaignID, "status": updated.Status,
	})
	return updated, nil
}

// ListDisbursements returns the releases made for a campaign.
func (s *DisbursementService) ListDisbursements(ctx context.Context, campaignID string) ([]domain.Disbursement, error) {
	if _, err := s.campaigns.GetByID(ctx, campaignID); err != nil {
		return nil, lookup(err, "campaign")
	}
	return s.disbursements.ListByCampaign(ctx, campaignID)
}
