package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"clearcause/internal/domain"
	"clearcause/internal/http/handlers"
	"clearcause/internal/middleware"
)

// Options carries the collaborators the middleware chain needs.
type Options struct {
	Issuer         *middleware.JWTIssuer
	Limiter        middleware.Limiter
	AllowedOrigins []string
	Country        middleware.CountryLookup
	Static         http.Handler
	Logger         zerolog.Logger
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N("en", opts.Country),
	)
	if opts.Limiter != nil {
		r.Use(middleware.RateLimit(opts.Limiter, opts.Logger))
	}

	if opts.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static", opts.Static))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)

		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuth(opts.Issuer))

			// Public
			r.Post("/auth/signup", app.SignUp)
			r.Post("/auth/signin", app.SignIn)
			r.Get("/campaigns", app.ListCampaigns)
			r.Get("/campaigns/{id}", app.GetCampaign)
			r.Get("/campaigns/{id}/reviews", app.CampaignReviews)
			r.Get("/campaigns/{id}/reviews/summary", app.CampaignRating)
			r.Get("/campaigns/{id}/donations", app.CampaignDonations)
			r.Get("/campaigns/{id}/disbursements", app.ListDisbursements)
			r.Get("/charities", app.ListCharities)
			r.Get("/charities/{id}", app.GetCharity)
			r.Get("/charities/{id}/feedback", app.CharityFeedback)
			r.Get("/charities/{id}/feedback/summary", app.CharityRating)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthJWT(opts.Issuer))

				r.Get("/me", app.Me)
				r.Patch("/me", app.UpdateMe)
				r.Post("/uploads/{bucket}", app.Upload)
				r.Delete("/uploads/*", app.DeleteUpload)

				// Donor
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(domain.UserRoleDonor))
					r.Post("/donations", app.CreateDonation)
					r.Get("/donations/mine", app.MyDonations)
					r.Post("/campaigns/{id}/reviews", app.SubmitReview)
					r.Get("/reviews/mine", app.MyReviews)
					r.Patch("/reviews/{id}", app.UpdateReview)
					r.Post("/charities/{id}/feedback", app.SubmitFeedback)
					r.Get("/feedback/mine", app.MyFeedback)
					r.Patch("/feedback/{id}", app.UpdateFeedback)
				})

				// Failing a donation and deletes are open to the owner or an admin.
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(domain.UserRoleDonor, domain.UserRoleAdmin))
					r.Get("/donations/{id}", app.GetDonation)
					r.Post("/donations/{id}/fail", app.FailDonation)
					r.Delete("/reviews/{id}", app.DeleteReview)
					r.Delete("/feedback/{id}", app.DeleteFeedback)
				})

				// Charity
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(domain.UserRoleCharity))
					r.Post("/charities", app.RegisterCharity)
					r.Get("/charities/mine", app.MyCharity)
					r.Patch("/charities/{id}", app.UpdateCharity)
					r.Post("/campaigns", app.CreateCampaign)
					r.Patch("/campaigns/{id}", app.UpdateCampaign)
					r.Delete("/campaigns/{id}", app.DeleteCampaign)
					r.Post("/campaigns/{id}/status", app.UpdateCampaignStatus)
					r.Post("/milestones/{id}/proof", app.SubmitMilestoneProof)
					r.Post("/withdrawals", app.RequestWithdrawal)
					r.Post("/withdrawals/{id}/cancel", app.CancelWithdrawal)
					r.Get("/dashboard/charity", app.CharityDashboard)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(domain.UserRoleCharity, domain.UserRoleAdmin))
					r.Get("/withdrawals", app.ListWithdrawals)
					r.Get("/charities/{id}/balance", app.CharityBalance)
				})

				r.Route("/admin", func(r chi.Router) {
					r.Use(middleware.RequireRole(domain.UserRoleAdmin))
					r.Post("/charities/{id}/verify", app.VerifyCharity)
					r.Post("/donations/{id}/complete", app.CompleteDonation)
					r.Post("/campaigns/{id}/status", app.UpdateCampaignStatus)
					r.Post("/campaigns/{id}/release-seed", app.ReleaseSeed)
					r.Post("/milestones/{id}/review", app.ReviewMilestone)
					r.Get("/withdrawals", app.AdminWithdrawals)
					r.Post("/withdrawals/{id}/process", app.ProcessWithdrawal)
					r.Post("/reviews/{id}/moderate", app.ModerateReview)
					r.Post("/feedback/{id}/moderate", app.ModerateFeedback)
					r.Get("/audit-logs", app.AuditLogs)
					r.Get("/users", app.ListUsers)
					r.Post("/users/{id}/role", app.SetUserRole)
					r.Post("/users/{id}/active", app.SetUserActive)
					r.Get("/stats", app.PlatformStats)
				})
			})
		})
	})

	return r
}
