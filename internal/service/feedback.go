package service

import (
	"context"
	"errors"

	"clearcause/internal/domain"
)

// FeedbackService manages donor feedback on charities. Eligibility is a
// completed donation to any campaign of the charity.
type FeedbackService struct {
	Base
	feedback  domain.FeedbackRepository
	charities domain.CharityRepository
	donations domain.DonationRepository
}

func NewFeedbackService(feedback domain.FeedbackRepository, charities domain.CharityRepository, donations domain.DonationRepository, base Base) *FeedbackService {
	return &FeedbackService{Base: base, feedback: feedback, charities: charities, donations: donations}
}

func (s *FeedbackService) Submit(ctx context.Context, actor domain.Actor, charityID string, rating int, comment string) (*domain.CharityFeedback, error) {
	if err := requireAuth(actor); err != nil {
		return nil, err
	}
	comment = trim(comment)
	if err := validateRating(rating, comment); err != nil {
		return nil, err
	}
	if _, err := s.charities.GetByID(ctx, charityID); err != nil {
		return nil, lookup(err, "charity")
	}
	donated, err := s.donations.HasCompletedForCharity(ctx, actor.UserID, charityID)
	if err != nil {
		return nil, err
	}
	if !donated {
		return nil, domain.NotEligible("only donors with a completed donation can rate this charity")
	}
	exists, err := s.feedback.Exists(ctx, charityID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflict(domain.ErrDuplicateReview, "you have already rated this charity")
	}
	fb := &domain.CharityFeedback{CharityID: charityID, UserID: actor.UserID, Rating: rating, Comment: comment}
	if err := s.feedback.Create(ctx, fb); err != nil {
		if errors.Is(err, domain.ErrDuplicateReview) {
			return nil, domain.Conflict(domain.ErrDuplicateReview, "you have already rated this charity")
		}
		return nil, err
	}
	s.audit(ctx, actor, "feedback.submitted", "charity_feedback", fb.ID, map[string]any{"charityId": charityID, "rating": rating})
	return fb, nil
}

func (s *FeedbackService) ListForCharity(ctx context.Context, actor domain.Actor, charityID string, status domain.ReviewStatus, page domain.Page) ([]domain.CharityFeedback, error) {
	if !actor.IsAdmin() || status == "" {
		status = domain.ReviewApproved
	}
	if !status.Valid() {
		return nil, domain.Validation("unknown status %q", status)
	}
	return s.feedback.List(ctx, domain.ReviewFilter{TargetID: charityID, Status: status, Page: page.Normalize()})
}

func (s *FeedbackService) ListMine(ctx context.Context, actor domain.Actor, page domain.Page) ([]domain.CharityFeedback, error) {
	if err := requireAuth(actor); err != nil {
		return nil, err
	}
	return s.feedback.List(ctx, domain.ReviewFilter{UserID: actor.UserID, Page: page.Normalize()})
}

func (s *FeedbackService) Update(ctx context.Context, actor domain.Actor, id string, rating int, comment string) (*domain.CharityFeedback, error) {
	fb, err := s.get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if fb.UserID != actor.UserID {
		return nil, domain.Forbidden("you can only edit your own feedback")
	}
	comment = trim(comment)
	if err := validateRating(rating, comment); err != nil {
		return nil, err
	}
	updated, err := s.feedback.Update(ctx, id, rating, comment)
	if err != nil {
		return nil, lookup(err, "feedback")
	}
	return updated, nil
}

func (s *FeedbackService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	fb, err := s.get(ctx, actor, id)
	if err != nil {
		return err
	}
	if fb.UserID != actor.UserID && !actor.IsAdmin() {
		return domain.Forbidden("you can only delete your own feedback")
	}
	if err := s.feedback.Delete(ctx, id); err != nil {
		return lookup(err, "feedback")
	}
	s.audit(ctx, actor, "feedback.deleted", "charity_feedback", id, map[string]any{"charityId": fb.CharityID})
	return nil
}

func (s *FeedbackService) Moderate(ctx context.Context, actor domain.Actor, id string, status domain.ReviewStatus) (*domain.CharityFeedback, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.Validation("unknown status %q", status)
	}
	fb, err := s.feedback.SetStatus(ctx, id, status)
	if err != nil {
		return nil, lookup(err, "feedback")
	}
	s.audit(ctx, actor, "feedback.moderated", "charity_feedback", id, map[string]any{"status": status})
	return fb, nil
}

func (s *FeedbackService) Summary(ctx context.Context, charityID string) (*domain.RatingSummary, error) {
	return s.feedback.Summary(ctx, charityID)
}

func (s *FeedbackService) get(ctx context.Context, actor domain.Actor, id string) (*domain.CharityFeedback, error) {
	if err := requireAuth(actor); err != nil {
		return nil, err
	}
	fb, err := s.feedback.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "feedback")
	}
	return fb, nil
}
