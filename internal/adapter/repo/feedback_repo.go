package repo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"clearcause/internal/domain"
	"clearcause/internal/infra"
	"clearcause/internal/sqlinline"
)

// FeedbackRepositoryPG implements domain.FeedbackRepository.
type FeedbackRepositoryPG struct {
	db infra.DB
}

func NewFeedbackRepository(db infra.DB) *FeedbackRepositoryPG {
	return &FeedbackRepositoryPG{db: db}
}

func (r *FeedbackRepositoryPG) Create(ctx context.Context, f *domain.CharityFeedback) error {
	err := r.db.QueryRow(ctx, sqlinline.QInsertCharityFeedback, f.CharityID, f.UserID, f.Rating, f.Comment).
		Scan(&f.ID, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if infra.IsUniqueViolation(err) {
		return domain.ErrDuplicateReview
	}
	return err
}

func (r *FeedbackRepositoryPG) GetByID(ctx context.Context, id string) (*domain.CharityFeedback, error) {
	return scanFeedback(r.db.QueryRow(ctx, sqlinline.QSelectCharityFeedbackByID, id))
}

func (r *FeedbackRepositoryPG) Exists(ctx context.Context, charityID, userID string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, sqlinline.QCharityFeedbackExists, charityID, userID).Scan(&ok)
	return ok, err
}

func (r *FeedbackRepositoryPG) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.CharityFeedback, error) {
	page := filter.Page.Normalize()
	rows, err := r.db.Query(ctx, sqlinline.QListCharityFeedback, filter.TargetID, filter.UserID, string(filter.Status), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanFeedback)
}

func (r *FeedbackRepositoryPG) Update(ctx context.Context, id string, rating int, comment string) (*domain.CharityFeedback, error) {
	return scanFeedback(r.db.QueryRow(ctx, sqlinline.QUpdateCharityFeedback, id, rating, comment))
}

func (r *FeedbackRepositoryPG) SetStatus(ctx context.Context, id string, status domain.ReviewStatus) (*domain.CharityFeedback, error) {
	return scanFeedback(r.db.QueryRow(ctx, sqlinline.QSetCharityFeedbackStatus, id, string(status)))
}

func (r *FeedbackRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, sqlinline.QDeleteCharityFeedback, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *FeedbackRepositoryPG) Summary(ctx context.Context, charityID string) (*domain.RatingSummary, error) {
	rows, err := r.db.Query(ctx, sqlinline.QCharityRatingBreakdown, charityID)
	if err != nil {
		return nil, err
	}
	return breakdown(rows)
}

func scanFeedback(row pgx.Row) (*domain.CharityFeedback, error) {
	var f domain.CharityFeedback
	if err := row.Scan(&f.ID, &f.CharityID, &f.UserID, &f.UserName, &f.Rating, &f.Comment, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

var _ domain.FeedbackRepository = (*FeedbackRepositoryPG)(nil)
