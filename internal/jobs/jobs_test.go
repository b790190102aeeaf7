package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type stubCampaigns struct {
	calledAt time.Time
	n        int
	err      error
}

func (s *stubCampaigns) ExpireEnded(_ context.Context, now time.Time) (int, error) {
	s.calledAt = now
	return s.n, s.err
}

type stubDonations struct {
	ttl   time.Duration
	calls int
}

func (s *stubDonations) ExpireStalePending(_ context.Context, ttl time.Duration) (int64, error) {
	s.ttl = ttl
	s.calls++
	return 3, nil
}

func TestExpireCampaignsUsesClock(t *testing.T) {
	now := time.Date(2026, 3, 1, 20, 0, 0, 0, time.FixedZone("PHT", 8*3600))
	campaigns := &stubCampaigns{n: 2}
	j := &Jobs{Campaigns: campaigns, Logger: zerolog.Nop(), Now: func() time.Time { return now }}

	j.ExpireCampaigns()

	if !campaigns.calledAt.Equal(now) || campaigns.calledAt.Location() != time.UTC {
		t.Fatalf("ExpireEnded called with %v, want %v in UTC", campaigns.calledAt, now)
	}
}

func TestExpireCampaignsSwallowsErrors(t *testing.T) {
	j := &Jobs{Campaigns: &stubCampaigns{err: errors.New("db down")}, Logger: zerolog.Nop()}
	j.ExpireCampaigns()
}

func TestExpirePendingDonations(t *testing.T) {
	donations := &stubDonations{}
	j := &Jobs{Donations: donations, Logger: zerolog.Nop()}

	j.ExpirePendingDonations()
	if donations.calls != 0 {
		t.Fatal("a zero ttl must disable the job")
	}

	j.PendingTTL = time.Hour
	j.ExpirePendingDonations()
	if donations.calls != 1 || donations.ttl != time.Hour {
		t.Fatalf("calls=%d ttl=%v", donations.calls, donations.ttl)
	}
}

func TestSchedulerRegister(t *testing.T) {
	j := &Jobs{Campaigns: &stubCampaigns{}, Donations: &stubDonations{}, Logger: zerolog.Nop()}

	if err := NewScheduler(j, "@every 15m", zerolog.Nop()).Register(); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := NewScheduler(j, "every fortnight", zerolog.Nop()).Register(); err == nil {
		t.Fatal("expected an invalid schedule to fail")
	}
}
