package service

import (
	"context"

	"clearcause/internal/domain"
)

// StatsService feeds the admin and charity dashboards.
type StatsService struct {
	Base
	analytics domain.AnalyticsRepository
	charities domain.CharityRepository
}

func NewStatsService(analytics domain.AnalyticsRepository, charities domain.CharityRepository, base Base) *StatsService {
	return &StatsService{Base: base, analytics: analytics, charities: charities}
}

// Platform returns platform-wide totals. Admin only.
func (s *StatsService) Platform(ctx context.Context, actor domain.Actor) (*domain.PlatformStats, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.analytics.PlatformStats(ctx)
}

// Charity returns the dashboard figures of the caller's charity.
func (s *StatsService) Charity(ctx context.Context, actor domain.Actor) (*domain.CharityStats, error) {
	if err := requireRole(actor, domain.UserRoleCharity); err != nil {
		return nil, err
	}
	charity, err := s.charities.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, lookup(err, "charity")
	}
	return s.analytics.CharityStats(ctx, charity.ID)
}
