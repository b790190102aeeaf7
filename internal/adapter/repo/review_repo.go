package repo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"clearcause/internal/domain"
	"clearcause/internal/infra"
	"clearcause/internal/sqlinline"
)

// ReviewRepositoryPG implements domain.ReviewRepository.
type ReviewRepositoryPG struct {
	db infra.DB
}

func NewReviewRepository(db infra.DB) *ReviewRepositoryPG {
	return &ReviewRepositoryPG{db: db}
}

// Create inserts a pending review. The (campaign, user) pair is unique; a
// second review yields domain.ErrDuplicateReview.
func (r *ReviewRepositoryPG) Create(ctx context.Context, review *domain.CampaignReview) error {
	err := r.db.QueryRow(ctx, sqlinline.QInsertCampaignReview, review.CampaignID, review.UserID, review.Rating, review.Comment).
		Scan(&review.ID, &review.Status, &review.CreatedAt, &review.UpdatedAt)
	if infra.IsUniqueViolation(err) {
		return domain.ErrDuplicateReview
	}
	return err
}

func (r *ReviewRepositoryPG) GetByID(ctx context.Context, id string) (*domain.CampaignReview, error) {
	return scanReview(r.db.QueryRow(ctx, sqlinline.QSelectCampaignReviewByID, id))
}

func (r *ReviewRepositoryPG) Exists(ctx context.Context, campaignID, userID string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, sqlinline.QCampaignReviewExists, campaignID, userID).Scan(&ok)
	return ok, err
}

func (r *ReviewRepositoryPG) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.CampaignReview, error) {
	page := filter.Page.Normalize()
	rows, err := r.db.Query(ctx, sqlinline.QListCampaignReviews, filter.TargetID, filter.UserID, string(filter.Status), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanReview)
}

// Update rewrites rating and comment and sends the review back to moderation.
func (r *ReviewRepositoryPG) Update(ctx context.Context, id string, rating int, comment string) (*domain.CampaignReview, error) {
	return scanReview(r.db.QueryRow(ctx, sqlinline.QUpdateCampaignReview, id, rating, comment))
}

func (r *ReviewRepositoryPG) SetStatus(ctx context.Context, id string, status domain.ReviewStatus) (*domain.CampaignReview, error) {
	return scanReview(r.db.QueryRow(ctx, sqlinline.QSetCampaignReviewStatus, id, string(status)))
}

func (r *ReviewRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, sqlinline.QDeleteCampaignReview, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Summary aggregates approved ratings of a campaign.
func (r *ReviewRepositoryPG) Summary(ctx context.Context, campaignID string) (*domain.RatingSummary, error) {
	rows, err := r.db.Query(ctx, sqlinline.QCampaignRatingBreakdown, campaignID)
	if err != nil {
		return nil, err
	}
	return breakdown(rows)
}

func scanReview(row pgx.Row) (*domain.CampaignReview, error) {
	var rv domain.CampaignReview
	if err := row.Scan(&rv.ID, &rv.CampaignID, &rv.UserID, &rv.UserName, &rv.Rating, &rv.Comment, &rv.Status, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return &rv, nil
}

var _ domain.ReviewRepository = (*ReviewRepositoryPG)(nil)
