package service

import (
	"context"
	"errors"
	"testing"

	"clearcause/internal/domain"
	"clearcause/internal/events"
)

type disbursementFixture struct {
	svc       *DisbursementService
	campaigns *stubCampaigns
	charities *stubCharities
	store     *stubDisbursements
	pub       *recordingPublisher
}

func newDisbursementFixture(status domain.CampaignStatus, milestones ...domain.Milestone) disbursementFixture {
	base, _, pub := newBase()
	charities := newStubCharities(approvedCharity())
	campaigns := newStubCampaigns(domain.Campaign{
		ID:         "camp-1",
		CharityID:  "charity-a",
		GoalAmount: 10000,
		Status:     status,
		Milestones: milestones,
	})
	store := &stubDisbursements{campaigns: campaigns, charities: charities}
	return disbursementFixture{
		svc:       NewDisbursementService(store, campaigns, charities, base),
		campaigns: campaigns,
		charities: charities,
		store:     store,
		pub:       pub,
	}
}

func TestReleaseSeedFundsOnce(t *testing.T) {
	f := newDisbursementFixture(domain.CampaignActive)
	ctx := context.Background()

	d, err := f.svc.ReleaseSeedFunds(ctx, admin, "camp-1")
	if err != nil {
		t.Fatalf("ReleaseSeedFunds error = %v", err)
	}
	if d.Amount != 2500 || d.Kind != domain.DisbursementSeed || d.CharityID != "charity-a" {
		t.Fatalf("unexpected disbursement %+v", d)
	}
	if got := f.charities.byID["charity-a"].AvailableBalance; got != 2500 {
		t.Fatalf("balance = %d, want 2500", got)
	}

	_, err = f.svc.ReleaseSeedFunds(ctx, admin, "camp-1")
	if !errors.Is(err, domain.ErrAlreadyReleased) {
		t.Fatalf("second ReleaseSeedFunds error = %v, want ErrAlreadyReleased", err)
	}
	if de := domain.AsError(err); de.Status != 409 {
		t.Fatalf("status = %d, want 409", de.Status)
	}
	if got := f.charities.byID["charity-a"].AvailableBalance; got != 2500 {
		t.Fatalf("balance after repeat = %d, want 2500", got)
	}
	if len(f.store.released) != 1 || len(f.pub.keys) != 1 || f.pub.keys[0] != events.SeedReleased {
		t.Fatalf("released %d, published %v", len(f.store.released), f.pub.keys)
	}
}

type seededElsewhere struct{ domain.DisbursementRepository }

func (seededElsewhere) ReleaseSeed(context.Context, *domain.Disbursement) error {
	return domain.ErrAlreadyReleased
}

func TestReleaseSeedFundsRepositoryGuard(t *testing.T) {
	// The campaign read still says unseeded, but a concurrent release won.
	f := newDisbursementFixture(domain.CampaignActive)
	base, _, pub := newBase()
	svc := NewDisbursementService(seededElsewhere{}, f.campaigns, f.charities, base)

	_, err := svc.ReleaseSeedFunds(context.Background(), admin, "camp-1")
	if !errors.Is(err, domain.ErrAlreadyReleased) {
		t.Fatalf("error = %v, want ErrAlreadyReleased", err)
	}
	if len(pub.keys) != 0 {
		t.Fatalf("published %v", pub.keys)
	}
}

func TestReleaseSeedFundsPreconditions(t *testing.T) {
	tests := []struct {
		name   string
		actor  domain.Actor
		status domain.CampaignStatus
		want   error
	}{
		{"not admin", charityAcc, domain.CampaignActive, domain.ErrForbidden},
		{"draft campaign", admin, domain.CampaignDraft, domain.ErrInvalidTransition},
		{"paused campaign", admin, domain.CampaignPaused, domain.ErrInvalidTransition},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newDisbursementFixture(tc.status)
			if _, err := f.svc.ReleaseSeedFunds(context.Background(), tc.actor, "camp-1"); !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
			if f.charities.byID["charity-a"].AvailableBalance != 0 {
				t.Fatal("balance credited")
			}
		})
	}

	t.Run("unverified charity", func(t *testing.T) {
		f := newDisbursementFixture(domain.CampaignActive)
		f.charities.byID["charity-a"].VerificationStatus = domain.VerificationRejected
		if _, err := f.svc.ReleaseSeedFunds(context.Background(), admin, "camp-1"); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("error = %v, want forbidden", err)
		}
	})
}

func TestMilestoneProofAndReview(t *testing.T) {
	f := newDisbursementFixture(domain.CampaignActive, domain.Milestone{
		ID: "ms-1", CampaignID: "camp-1", Title: "Drill wells", TargetAmount: 4000, Status: domain.MilestonePending,
	})
	ctx := context.Background()

	if _, err := f.svc.ReviewMilestone(ctx, admin, "ms-1", true, ""); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("review without proof error = %v", err)
	}
	if _, err := f.svc.SubmitMilestoneProof(ctx, otherOrg, "ms-1", "https://cdn.example.org/proof.pdf", ""); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("proof by other charity error = %v", err)
	}
	m, err := f.svc.SubmitMilestoneProof(ctx, charityAcc, "ms-1", "https://cdn.example.org/proof.pdf", "receipts")
	if err != nil {
		t.Fatalf("SubmitMilestoneProof error = %v", err)
	}
	if m.Status != domain.MilestoneProofSubmitted {
		t.Fatalf("status = %s", m.Status)
	}

	if _, err := f.svc.ReviewMilestone(ctx, admin, "ms-1", false, ""); err == nil {
		t.Fatal("rejection without notes should fail")
	}
	m, err = f.svc.ReviewMilestone(ctx, admin, "ms-1", true, "looks good")
	if err != nil {
		t.Fatalf("ReviewMilestone error = %v", err)
	}
	if m.Status != domain.MilestoneVerified {
		t.Fatalf("status = %s", m.Status)
	}
	if got := f.charities.byID["charity-a"].AvailableBalance; got != 3000 {
		t.Fatalf("balance = %d, want 3000", got)
	}
	if _, err := f.svc.ReviewMilestone(ctx, admin, "ms-1", true, ""); !errors.Is(err, domain.ErrAlreadyReleased) {
		t.Fatalf("second review error = %v, want ErrAlreadyReleased", err)
	}
	if got := f.charities.byID["charity-a"].AvailableBalance; got != 3000 {
		t.Fatalf("balance after repeat = %d, want 3000", got)
	}
}

func TestMilestoneRejectionAllowsResubmission(t *testing.T) {
	f := newDisbursementFixture(domain.CampaignActive, domain.Milestone{
		ID: "ms-1", CampaignID: "camp-1", TargetAmount: 1000, Status: domain.MilestoneProofSubmitted,
	})
	ctx := context.Background()

	m, err := f.svc.ReviewMilestone(ctx, admin, "ms-1", false, "receipt unreadable")
	if err != nil {
		t.Fatalf("ReviewMilestone(reject) error = %v", err)
	}
	if m.Status != domain.MilestoneRejected || m.ReviewNotes != "receipt unreadable" {
		t.Fatalf("unexpected milestone %+v", m)
	}
	if _, err := f.svc.SubmitMilestoneProof(ctx, charityAcc, "ms-1", "https://cdn.example.org/clear.pdf", ""); err != nil {
		t.Fatalf("resubmission error = %v", err)
	}
	if f.charities.byID["charity-a"].AvailableBalance != 0 {
		t.Fatal("rejection credited the charity")
	}
}
