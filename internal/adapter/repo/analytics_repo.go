package repo

import (
	"context"

	"clearcause/internal/domain"
	"clearcause/internal/infra"
	"clearcause/internal/sqlinline"
)

// AnalyticsRepositoryPG implements domain.AnalyticsRepository using PostgreSQL.
type AnalyticsRepositoryPG struct {
	db infra.DB
}

// NewAnalyticsRepository constructs the repository.
func NewAnalyticsRepository(db infra.DB) *AnalyticsRepositoryPG {
	return &AnalyticsRepositoryPG{db: db}
}

// PlatformStats returns the admin dashboard aggregates.
func (r *AnalyticsRepositoryPG) PlatformStats(ctx context.Context) (*domain.PlatformStats, error) {
	var s domain.PlatformStats
	if err := r.db.QueryRow(ctx, sqlinline.QPlatformTotals).Scan(
		&s.TotalUsers,
		&s.TotalRaised,
		&s.TotalDisbursed,
		&s.PendingWithdrawals,
		&s.PendingMilestoneProof,
		&s.DonationsLast24h,
	); err != nil {
		return nil, err
	}

	var err error
	if s.CharitiesByStatus, err = r.countBy(ctx, sqlinline.QCharitiesByStatus); err != nil {
		return nil, err
	}
	if s.CampaignsByStatus, err = r.countBy(ctx, sqlinline.QCampaignsByStatus); err != nil {
		return nil, err
	}
	return &s, nil
}

// CharityStats returns the dashboard figures of one charity.
func (r *AnalyticsRepositoryPG) CharityStats(ctx context.Context, charityID string) (*domain.CharityStats, error) {
	s := domain.CharityStats{CharityID: charityID}
	if err := r.db.QueryRow(ctx, sqlinline.QCharityTotals, charityID).Scan(
		&s.TotalRaised,
		&s.AvailableBalance,
		&s.TotalWithdrawn,
		&s.ActiveCampaigns,
		&s.DonorsCount,
	); err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *AnalyticsRepositoryPG) countBy(ctx context.Context, query string) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int64{}
	for rows.Next() {
		var (
			key   string
			count int64
		)
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		out[key] = count
	}
	return out, rows.Err()
}

var _ domain.AnalyticsRepository = (*AnalyticsRepositoryPG)(nil)
