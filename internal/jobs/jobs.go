// Package jobs runs the periodic housekeeping of the platform.
package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CampaignExpirer closes active campaigns whose end date has passed.
type CampaignExpirer interface {
	ExpireEnded(ctx context.Context, now time.Time) (int, error)
}

// DonationExpirer fails pending donations older than ttl.
type DonationExpirer interface {
	ExpireStalePending(ctx context.Context, ttl time.Duration) (int64, error)
}

// Jobs holds the job bodies. Each run gets its own timeout.
type Jobs struct {
	Campaigns  CampaignExpirer
	Donations  DonationExpirer
	PendingTTL time.Duration
	Timeout    time.Duration
	Logger     zerolog.Logger
	Now        func() time.Time
}

func (j *Jobs) context() (context.Context, context.CancelFunc) {
	timeout := j.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	return context.WithTimeout(context.Background(), timeout)
}

func (j *Jobs) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now()
}

// ExpireCampaigns completes every active campaign past its end date.
func (j *Jobs) ExpireCampaigns() {
	ctx, cancel := j.context()
	defer cancel()

	n, err := j.Campaigns.ExpireEnded(ctx, j.now().UTC())
	if err != nil {
		j.Logger.Error().Err(err).Str("job", "expire_campaigns").Msg("job failed")
		return
	}
	j.Logger.Info().Str("job", "expire_campaigns").Int("completed", n).Msg("job finished")
}

// ExpirePendingDonations marks abandoned checkouts as failed.
func (j *Jobs) ExpirePendingDonations() {
	if j.PendingTTL <= 0 {
		return
	}
	ctx, cancel := j.context()
	defer cancel()

	n, err := j.Donations.ExpireStalePending(ctx, j.PendingTTL)
	if err != nil {
		j.Logger.Error().Err(err).Str("job", "expire_pending_donations").Msg("job failed")
		return
	}
	j.Logger.Info().Str("job", "expire_pending_donations").Int64("failed", n).Msg("job finished")
}
