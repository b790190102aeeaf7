package service

import (
	"context"
	"errors"
	"testing"

	"clearcause/internal/domain"
	"clearcause/internal/events"
)

func TestCharityRegisterAndVerify(t *testing.T) {
	base, audit, pub := newBase()
	store := newStubCharities()
	svc := NewCharityService(store, base)
	ctx := context.Background()
	in := CharityInput{OrganizationName: " Bayanihan Relief ", ContactEmail: "ops@bayanihan.org", RegistrationNumber: "SEC-123"}

	c, err := svc.Register(ctx, charityAcc, in)
	if err != nil {
		t.Fatalf("Register error = %v", err)
	}
	if c.OrganizationName != "Bayanihan Relief" || c.VerificationStatus != domain.VerificationPending {
		t.Fatalf("unexpected charity %+v", c)
	}
	if _, err := svc.Register(ctx, charityAcc, in); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("second Register error = %v", err)
	}
	if _, err := svc.Register(ctx, donor, in); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("donor Register error = %v", err)
	}

	if _, err := svc.Verify(ctx, admin, c.ID, false, " "); domain.AsError(err).Kind != domain.KindValidation {
		t.Fatalf("reject without notes error = %v", err)
	}
	if _, err := svc.Verify(ctx, charityAcc, c.ID, true, ""); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("self Verify error = %v", err)
	}
	got, err := svc.Verify(ctx, admin, c.ID, true, "documents match")
	if err != nil {
		t.Fatalf("Verify error = %v", err)
	}
	if got.VerificationStatus != domain.VerificationApproved {
		t.Fatalf("status = %s", got.VerificationStatus)
	}
	if _, err := svc.Verify(ctx, admin, c.ID, false, "late"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("re-verify error = %v", err)
	}
	if len(pub.keys) != 1 || pub.keys[0] != events.CharityVerified {
		t.Fatalf("published %v", pub.keys)
	}
	if acts := audit.actions(); len(acts) != 2 || acts[1] != "charity.verified" {
		t.Fatalf("audited %v", acts)
	}
}

func TestCharityUpdateResetsVerification(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *CharityInput)
		want   domain.VerificationStatus
	}{
		{"description only", func(in *CharityInput) { in.Description = "new story" }, domain.VerificationApproved},
		{"registration number", func(in *CharityInput) { in.RegistrationNumber = "SEC-999" }, domain.VerificationPending},
		{"organisation name", func(in *CharityInput) { in.OrganizationName = "Bayanihan Foundation" }, domain.VerificationPending},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			base, _, _ := newBase()
			store := newStubCharities(approvedCharity())
			svc := NewCharityService(store, base)
			c := approvedCharity()
			in := CharityInput{
				OrganizationName:   c.OrganizationName,
				ContactEmail:       c.ContactEmail,
				RegistrationNumber: c.RegistrationNumber,
			}
			tc.mutate(&in)
			got, err := svc.Update(context.Background(), charityAcc, c.ID, in)
			if err != nil {
				t.Fatalf("Update error = %v", err)
			}
			if got.VerificationStatus != tc.want || store.byID[c.ID].VerificationStatus != tc.want {
				t.Fatalf("status = %s, want %s", got.VerificationStatus, tc.want)
			}
		})
	}
}

func TestCharityVisibility(t *testing.T) {
	base, _, _ := newBase()
	pending := domain.Charity{ID: "charity-p", UserID: otherOrg.UserID, VerificationStatus: domain.VerificationPending}
	svc := NewCharityService(newStubCharities(approvedCharity(), pending), base)
	ctx := context.Background()

	if _, err := svc.Get(ctx, donor, "charity-p"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("public Get(pending) error = %v", err)
	}
	if _, err := svc.Get(ctx, otherOrg, "charity-p"); err != nil {
		t.Fatalf("owner Get(pending) error = %v", err)
	}
	list, err := svc.List(ctx, domain.Actor{}, domain.CharityFilter{Status: domain.VerificationPending})
	if err != nil || len(list) != 1 || list[0].ID != "charity-a" {
		t.Fatalf("public List() = %+v, %v", list, err)
	}
	if _, err := svc.Balance(ctx, otherOrg, "charity-a"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Balance by other charity error = %v", err)
	}
	if b, err := svc.Balance(ctx, admin, "charity-a"); err != nil || b.CharityID != "charity-a" {
		t.Fatalf("admin Balance() = %+v, %v", b, err)
	}
}
