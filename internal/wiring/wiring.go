// Package wiring builds the repositories and services shared by the binaries.
package wiring

import (
	"time"

	"github.com/rs/zerolog"

	"clearcause/internal/adapter/repo"
	"clearcause/internal/domain"
	"clearcause/internal/events"
	"clearcause/internal/infra"
	"clearcause/internal/service"
)

// Deps are the outer collaborators. Tokens and Store may be nil for binaries
// that never sign in users or accept uploads.
type Deps struct {
	DB             infra.DB
	Events         events.Publisher
	Tokens         service.TokenIssuer
	Store          service.ObjectStore
	MaxUploadBytes int64
	Logger         zerolog.Logger
	Now            func() time.Time
}

// Services is every use case of the platform.
type Services struct {
	Audit         *service.AuditService
	Users         *service.UserService
	Charities     *service.CharityService
	Campaigns     *service.CampaignService
	Donations     *service.DonationService
	Reviews       *service.ReviewService
	Feedback      *service.FeedbackService
	Withdrawals   *service.WithdrawalService
	Disbursements *service.DisbursementService
	Uploads       *service.UploadService
	Stats         *service.StatsService

	// Accounts backs per-request account checks in the auth middleware.
	Accounts domain.UserRepository
}

func New(d Deps) *Services {
	users := repo.NewUserRepository(d.DB)
	charities := repo.NewCharityRepository(d.DB)
	campaigns := repo.NewCampaignRepository(d.DB)
	donations := repo.NewDonationRepository(d.DB)
	reviews := repo.NewReviewRepository(d.DB)
	feedback := repo.NewFeedbackRepository(d.DB)
	withdrawals := repo.NewWithdrawalRepository(d.DB)
	disbursements := repo.NewDisbursementRepository(d.DB)
	analytics := repo.NewAnalyticsRepository(d.DB)

	audit := service.NewAuditService(repo.NewAuditRepository(d.DB), d.Logger)
	base := service.Base{Audit: audit, Events: d.Events, Logger: d.Logger, Now: d.Now}

	s := &Services{
		Audit:         audit,
		Users:         service.NewUserService(users, d.Tokens, base),
		Charities:     service.NewCharityService(charities, base),
		Campaigns:     service.NewCampaignService(campaigns, charities, base),
		Donations:     service.NewDonationService(donations, campaigns, base),
		Reviews:       service.NewReviewService(reviews, campaigns, donations, base),
		Feedback:      service.NewFeedbackService(feedback, charities, donations, base),
		Withdrawals:   service.NewWithdrawalService(withdrawals, charities, base),
		Disbursements: service.NewDisbursementService(disbursements, campaigns, charities, base),
		Stats:         service.NewStatsService(analytics, charities, base),
		Accounts:      users,
	}
	if d.Store != nil {
		s.Uploads = service.NewUploadService(d.Store, d.MaxUploadBytes, base)
	}
	return s
}
