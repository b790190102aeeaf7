package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"clearcause/internal/domain"
)

type stubAnalytics struct {
	charityID string
}

func (s *stubAnalytics) PlatformStats(context.Context) (*domain.PlatformStats, error) {
	return &domain.PlatformStats{TotalUsers: 3}, nil
}

func (s *stubAnalytics) CharityStats(_ context.Context, charityID string) (*domain.CharityStats, error) {
	s.charityID = charityID
	return &domain.CharityStats{CharityID: charityID}, nil
}

func TestStatsAccess(t *testing.T) {
	base, _, _ := newBase()
	analytics := &stubAnalytics{}
	svc := NewStatsService(analytics, newStubCharities(approvedCharity()), base)
	ctx := context.Background()

	if _, err := svc.Platform(ctx, charityAcc); domain.AsError(err).Kind != domain.KindForbidden {
		t.Fatalf("charity reading platform stats: %v", err)
	}
	if got, err := svc.Platform(ctx, admin); err != nil || got.TotalUsers != 3 {
		t.Fatalf("Platform() = %+v, %v", got, err)
	}

	if _, err := svc.Charity(ctx, donor); domain.AsError(err).Kind != domain.KindForbidden {
		t.Fatalf("donor reading charity dashboard: %v", err)
	}
	if _, err := svc.Charity(ctx, otherOrg); domain.AsError(err).Kind != domain.KindNotFound {
		t.Fatalf("charity account without a charity: %v", err)
	}
	if got, err := svc.Charity(ctx, charityAcc); err != nil || got.CharityID != "charity-a" || analytics.charityID != "charity-a" {
		t.Fatalf("Charity() = %+v, %v", got, err)
	}
}

type stubAudit struct {
	entries []domain.AuditLog
	err     error
}

func (s *stubAudit) Insert(ctx context.Context, e *domain.AuditLog) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, *e)
	return nil
}

func (s *stubAudit) List(context.Context, domain.AuditFilter) ([]domain.AuditLog, error) {
	return s.entries, nil
}

func TestAuditRecord(t *testing.T) {
	repo := &stubAudit{}
	svc := NewAuditService(repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Record(ctx, "admin-1", "charity.verified", "charity", "charity-a", map[string]bool{"approved": true})

	if len(repo.entries) != 1 {
		t.Fatalf("expected the entry to survive a cancelled request, got %d", len(repo.entries))
	}
	if got := string(repo.entries[0].Details); got != `{"approved":true}` {
		t.Fatalf("details = %s", got)
	}

	repo.err = errors.New("insert failed")
	svc.Record(context.Background(), "admin-1", "x", "y", "z", nil)

	if _, err := svc.List(context.Background(), donor, domain.AuditFilter{}); domain.AsError(err).Kind != domain.KindForbidden {
		t.Fatalf("donor listing audit logs: %v", err)
	}
	if logs, err := svc.List(context.Background(), admin, domain.AuditFilter{}); err != nil || len(logs) != 1 {
		t.Fatalf("List() = %d entries, %v", len(logs), err)
	}
}
