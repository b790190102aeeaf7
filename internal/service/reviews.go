package service

import (
	"context"
	"errors"

	"clearcause/internal/domain"
)

// ReviewService manages donor reviews of campaigns.
type ReviewService struct {
	Base
	reviews   domain.ReviewRepository
	campaigns domain.CampaignRepository
	donations domain.DonationRepository
}

func NewReviewService(reviews domain.ReviewRepository, campaigns domain.CampaignRepository, donations domain.DonationRepository, base Base) *ReviewService {
	return &ReviewService{Base: base, reviews: reviews, campaigns: campaigns, donations: donations}
}

// Submit stores a pending review. Only donors with a completed donation to the
// campaign may review it, and only once.
func (s *ReviewService) Submit(ctx context.Context, actor domain.Actor, campaignID string, rating int, comment string) (*domain.CampaignReview, error) {
	if err := requireAuth(actor); err != nil {
		return nil, err
	}
	comment = trim(comment)
	if err := validateRating(rating, comment); err != nil {
		return nil, err
	}
	if _, err := s.campaigns.GetByID(ctx, campaignID); err != nil {
		return nil, lookup(err, "campaign")
	}
	donated, err := s.donations.HasCompletedForCampaign(ctx, actor.UserID, campaignID)
	if err != nil {
		return nil, err
	}
	if !donated {
		return nil, domain.NotEligible("only donors with a completed donation can review this campaign")
	}
	exists, err := s.reviews.Exists(ctx, campaignID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflict(domain.ErrDuplicateReview, "you have already reviewed this campaign")
	}
	rv := &domain.CampaignReview{CampaignID: campaignID, UserID: actor.UserID, Rating: rating, Comment: comment}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if errors.Is(err, domain.ErrDuplicateReview) {
			return nil, domain.Conflict(domain.ErrDuplicateReview, "you have already reviewed this campaign")
		}
		return nil, err
	}
	s.audit(ctx, actor, "review.submitted", "campaign_review", rv.ID, map[string]any{"campaignId": campaignID, "rating": rating})
	return rv, nil
}

// ListForCampaign returns the approved reviews of a campaign. Admins may ask
// for another status.
func (s *ReviewService) ListForCampaign(ctx context.Context, actor domain.Actor, campaignID string, status domain.ReviewStatus, page domain.Page) ([]domain.CampaignReview, error) {
	if !actor.IsAdmin() || status == "" {
		status = domain.ReviewApproved
	}
	if !status.Valid() {
		return nil, domain.Validation("unknown status %q", status)
	}
	return s.reviews.List(ctx, domain.ReviewFilter{TargetID: campaignID, Status: status, Page: page.Normalize()})
}

// ListMine returns the caller's reviews in every status.
func (s *ReviewService) ListMine(ctx context.Context, actor domain.Actor, page domain.Page) ([]domain.CampaignReview, error) {
	if err := requireAuth(actor); err != nil {
		return nil, err
	}
	return s.reviews.List(ctx, domain.ReviewFilter{UserID: actor.UserID, Page: page.Normalize()})
}

// Update rewrites the caller's review and sends it back to moderation.
func (s *ReviewService) Update(ctx context.Context, actor domain.Actor, id string, rating int, comment string) (*domain.CampaignReview, error) {
	rv, err := s.get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if rv.UserID != actor.UserID {
		return nil, domain.Forbidden("you can only edit your own review")
	}
	comment = trim(comment)
	if err := validateRating(rating, comment); err != nil {
		return nil, err
	}
	updated, err := s.reviews.Update(ctx, id, rating, comment)
	if err != nil {
		return nil, lookup(err, "review")
	}
	return updated, nil
}

// Delete removes a review. Owners and admins only.
func (s *ReviewService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	rv, err := s.get(ctx, actor, id)
	if err != nil {
		return err
	}
	if rv.UserID != actor.UserID && !actor.IsAdmin() {
		return domain.Forbidden("you can only delete your own review")
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return lookup(err, "review")
	}
	s.audit(ctx, actor, "review.deleted", "campaign_review", id, map[string]any{"campaignId": rv.CampaignID})
	return nil
}

// Moderate sets the moderation status of a review.
func (s *ReviewService) Moderate(ctx context.Context, actor domain.Actor, id string, status domain.ReviewStatus) (*domain.CampaignReview, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.Validation("unknown status %q", status)
	}
	rv, err := s.reviews.SetStatus(ctx, id, status)
	if err != nil {
		return nil, lookup(err, "review")
	}
	s.audit(ctx, actor, "review.moderated", "campaign_review", id, map[string]any{"status": status})
	return rv, nil
}

// Summary returns the average rating and count of approved reviews.
func (s *ReviewService) Summary(ctx context.Context, campaignID string) (*domain.RatingSummary, error) {
	return s.reviews.Summary(ctx, campaignID)
}

func (s *ReviewService) get(ctx context.Context, actor domain.Actor, id string) (*domain.CampaignReview, error) {
	if err := requireAuth(actor); err != nil {
		return nil, err
	}
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "review")
	}
	return rv, nil
}
