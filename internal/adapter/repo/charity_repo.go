package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"clearcause/internal/domain"
	"clearcause/internal/infra"
	"clearcause/internal/sqlinline"
)

// CharityRepositoryPG implements domain.CharityRepository.
type CharityRepositoryPG struct {
	db infra.DB
}

func NewCharityRepository(db infra.DB) *CharityRepositoryPG {
	return &CharityRepositoryPG{db: db}
}

// Create registers a charity. One charity per user; a second one is a conflict.
func (r *CharityRepositoryPG) Create(ctx context.Context, c *domain.Charity) error {
	err := r.db.QueryRow(ctx, sqlinline.QInsertCharity,
		c.UserID, c.OrganizationName, c.Description, c.WebsiteURL, c.ContactEmail, c.RegistrationNumber, c.DocumentURL,
	).Scan(&c.ID, &c.VerificationStatus, &c.AvailableBalance, &c.TotalReceived, &c.CreatedAt, &c.UpdatedAt)
	if infra.IsUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *CharityRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Charity, error) {
	return scanCharity(r.db.QueryRow(ctx, sqlinline.QSelectCharityByID, id))
}

func (r *CharityRepositoryPG) GetByUserID(ctx context.Context, userID string) (*domain.Charity, error) {
	return scanCharity(r.db.QueryRow(ctx, sqlinline.QSelectCharityByUserID, userID))
}

func (r *CharityRepositoryPG) List(ctx context.Context, filter domain.CharityFilter) ([]domain.Charity, error) {
	page := filter.Page.Normalize()
	rows, err := r.db.Query(ctx, sqlinline.QListCharities, string(filter.Status), filter.Search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanCharity)
}

// Update writes the editable profile and verification fields.
func (r *CharityRepositoryPG) Update(ctx context.Context, c *domain.Charity) error {
	err := r.db.QueryRow(ctx, sqlinline.QUpdateCharity,
		c.ID, c.OrganizationName, c.Description, c.WebsiteURL, c.ContactEmail, c.RegistrationNumber, c.DocumentURL,
		string(c.VerificationStatus), c.VerificationNotes,
	).Scan(&c.UpdatedAt)
	return notFound(err)
}

// SetVerification decides a pending charity. A charity that is no longer
// pending yields domain.ErrConflict.
func (r *CharityRepositoryPG) SetVerification(ctx context.Context, id string, status domain.VerificationStatus, notes string) (*domain.Charity, error) {
	c, err := scanCharity(r.db.QueryRow(ctx, sqlinline.QSetCharityVerification, id, string(status), notes))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrConflict
	}
	return c, err
}

func scanCharity(row pgx.Row) (*domain.Charity, error) {
	var c domain.Charity
	if err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.OrganizationName,
		&c.Description,
		&c.WebsiteURL,
		&c.ContactEmail,
		&c.RegistrationNumber,
		&c.DocumentURL,
		&c.VerificationStatus,
		&c.VerificationNotes,
		&c.AvailableBalance,
		&c.TotalReceived,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

var _ domain.CharityRepository = (*CharityRepositoryPG)(nil)
