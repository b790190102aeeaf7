package service

import (
	"context"
	"errors"
	"testing"

	"clearcause/internal/domain"
)

func newReviewFixture() (*ReviewService, *stubDonations, *stubReviews) {
	base, _, _ := newBase()
	campaigns := newStubCampaigns(domain.Campaign{ID: "camp-1", CharityID: "charity-a", Status: domain.CampaignActive})
	donations := newStubDonations()
	reviews := newStubReviews()
	return NewReviewService(reviews, campaigns, donations, base), donations, reviews
}

func TestReviewSubmitRequiresCompletedDonation(t *testing.T) {
	svc, _, reviews := newReviewFixture()

	_, err := svc.Submit(context.Background(), donor, "camp-1", 5, "great work")
	if !errors.Is(err, domain.ErrNotEligible) {
		t.Fatalf("Submit without donation error = %v, want ErrNotEligible", err)
	}
	if de := domain.AsError(err); de.Status != 403 {
		t.Fatalf("status = %d, want 403", de.Status)
	}
	if len(reviews.byID) != 0 {
		t.Fatalf("review stored despite ineligibility")
	}
}

func TestReviewSubmitRejectsDuplicate(t *testing.T) {
	svc, donations, _ := newReviewFixture()
	donations.completedByPair[donor.UserID+"|camp-1"] = true

	first, err := svc.Submit(context.Background(), donor, "camp-1", 4, "  helpful  ")
	if err != nil {
		t.Fatalf("first Submit error = %v", err)
	}
	if first.Status != domain.ReviewPending || first.Comment != "helpful" {
		t.Fatalf("unexpected review %+v", first)
	}

	_, err = svc.Submit(context.Background(), donor, "camp-1", 2, "changed my mind")
	if !errors.Is(err, domain.ErrDuplicateReview) {
		t.Fatalf("second Submit error = %v, want ErrDuplicateReview", err)
	}
	if de := domain.AsError(err); de.Kind != domain.KindConflict {
		t.Fatalf("kind = %s, want conflict", de.Kind)
	}
}

func TestReviewSubmitValidation(t *testing.T) {
	svc, donations, _ := newReviewFixture()
	donations.completedByPair[donor.UserID+"|camp-1"] = true
	long := make([]rune, domain.MaxCommentLength+1)
	for i := range long {
		long[i] = 'x'
	}

	tests := []struct {
		name     string
		actor    domain.Actor
		campaign string
		rating   int
		comment  string
		kind     domain.ErrorKind
	}{
		{"anonymous", domain.Actor{}, "camp-1", 5, "", domain.KindUnauthorized},
		{"rating too low", donor, "camp-1", 0, "", domain.KindValidation},
		{"rating too high", donor, "camp-1", 6, "", domain.KindValidation},
		{"comment too long", donor, "camp-1", 3, string(long), domain.KindValidation},
		{"unknown campaign", donor, "nope", 3, "", domain.KindNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tc.actor, tc.campaign, tc.rating, tc.comment)
			if got := domain.AsError(err); got == nil || got.Kind != tc.kind {
				t.Fatalf("Submit() error = %v, want kind %s", err, tc.kind)
			}
		})
	}
}

func TestReviewDeleteOwnership(t *testing.T) {
	svc, donations, reviews := newReviewFixture()
	donations.completedByPair[donor.UserID+"|camp-1"] = true
	rv, err := svc.Submit(context.Background(), donor, "camp-1", 5, "")
	if err != nil {
		t.Fatalf("Submit error = %v", err)
	}

	stranger := domain.Actor{UserID: "donor-2", Role: domain.UserRoleDonor}
	if err := svc.Delete(context.Background(), stranger, rv.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("stranger Delete error = %v, want forbidden", err)
	}
	if err := svc.Delete(context.Background(), admin, rv.ID); err != nil {
		t.Fatalf("admin Delete error = %v", err)
	}
	if len(reviews.byID) != 0 {
		t.Fatalf("review not deleted")
	}
}

func TestReviewListForCampaignForcesApprovedForPublic(t *testing.T) {
	svc, _, reviews := newReviewFixture()
	reviews.byID["r1"] = &domain.CampaignReview{ID: "r1", CampaignID: "camp-1", Status: domain.ReviewApproved}
	reviews.byID["r2"] = &domain.CampaignReview{ID: "r2", CampaignID: "camp-1", Status: domain.ReviewPending}

	got, err := svc.ListForCampaign(context.Background(), donor, "camp-1", domain.ReviewPending, domain.Page{})
	if err != nil {
		t.Fatalf("ListForCampaign error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("public listing = %+v, want only approved", got)
	}

	got, err = svc.ListForCampaign(context.Background(), admin, "camp-1", domain.ReviewPending, domain.Page{})
	if err != nil {
		t.Fatalf("admin ListForCampaign error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "r2" {
		t.Fatalf("admin listing = %+v, want pending review", got)
	}
}

func TestFeedbackEligibilityAndDuplicate(t *testing.T) {
	base, _, _ := newBase()
	charities := newStubCharities(approvedCharity())
	donations := newStubDonations()
	svc := NewFeedbackService(newStubFeedback(), charities, donations, base)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, donor, "charity-a", 5, ""); !errors.Is(err, domain.ErrNotEligible) {
		t.Fatalf("Submit without donation error = %v, want ErrNotEligible", err)
	}

	donations.completedByPair[donor.UserID+"|charity-a"] = true
	if _, err := svc.Submit(ctx, donor, "charity-a", 5, "transparent reporting"); err != nil {
		t.Fatalf("Submit error = %v", err)
	}
	if _, err := svc.Submit(ctx, donor, "charity-a", 1, ""); !errors.Is(err, domain.ErrDuplicateReview) {
		t.Fatalf("duplicate Submit error = %v, want ErrDuplicateReview", err)
	}
	if _, err := svc.Submit(ctx, donor, "missing", 5, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown charity error = %v, want not found", err)
	}
}
