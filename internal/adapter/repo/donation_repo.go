package repo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"clearcause/internal/domain"
	"clearcause/internal/infra"
	"clearcause/internal/sqlinline"
)

// DonationRepositoryPG implements domain.DonationRepository using PostgreSQL.
type DonationRepositoryPG struct {
	db infra.DB
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(db infra.DB) *DonationRepositoryPG {
	return &DonationRepositoryPG{db: db}
}

// Create inserts a pending donation.
func (r *DonationRepositoryPG) Create(ctx context.Context, d *domain.Donation) error {
	userID := ""
	if d.UserID != nil {
		userID = *d.UserID
	}
	return r.db.QueryRow(ctx, sqlinline.QInsertDonation,
		userID, d.CampaignID, d.Amount, d.PaymentMethod, d.IsAnonymous, d.Message, d.DonorCountry,
	).Scan(&d.ID, &d.Status, &d.CreatedAt, &d.UpdatedAt)
}

func (r *DonationRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	return scanDonation(r.db.QueryRow(ctx, sqlinline.QSelectDonationByID, id))
}

// Complete settles a pending donation and adds it to the campaign and
// charity totals in the same transaction.
func (r *DonationRepositoryPG) Complete(ctx context.Context, id, paymentReference string) (*domain.Donation, error) {
	var out *domain.Donation
	err := r.db.InTx(ctx, func(tx infra.SQLExecutor) error {
		campaignID, amount, err := lockPendingDonation(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sqlinline.QCompleteDonation, id, paymentReference); err != nil {
			return err
		}
		var charityID string
		if err := tx.QueryRow(ctx, sqlinline.QAddCampaignDonation, campaignID, amount).Scan(&charityID); err != nil {
			return notFound(err)
		}
		if _, err := tx.Exec(ctx, sqlinline.QAddCharityReceived, charityID, amount); err != nil {
			return err
		}
		out, err = scanDonation(tx.QueryRow(ctx, sqlinline.QSelectDonationByID, id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarkFailed fails a pending donation.
func (r *DonationRepositoryPG) MarkFailed(ctx context.Context, id, reason string) (*domain.Donation, error) {
	var out *domain.Donation
	err := r.db.InTx(ctx, func(tx infra.SQLExecutor) error {
		if _, _, err := lockPendingDonation(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sqlinline.QFailDonation, id, reason); err != nil {
			return err
		}
		var err error
		out, err = scanDonation(tx.QueryRow(ctx, sqlinline.QSelectDonationByID, id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func lockPendingDonation(ctx context.Context, tx infra.SQLExecutor, id string) (string, int64, error) {
	var (
		status     domain.DonationStatus
		campaignID string
		amount     int64
	)
	if err := tx.QueryRow(ctx, sqlinline.QLockDonation, id).Scan(&status, &campaignID, &amount); err != nil {
		return "", 0, notFound(err)
	}
	if status != domain.DonationPending {
		return "", 0, domain.ErrInvalidTransition
	}
	return campaignID, amount, nil
}

func (r *DonationRepositoryPG) ListByUser(ctx context.Context, userID string, page domain.Page) ([]domain.Donation, error) {
	page = page.Normalize()
	rows, err := r.db.Query(ctx, sqlinline.QListDonationsByUser, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanDonation)
}

// ListByCampaign returns completed donations, newest first.
func (r *DonationRepositoryPG) ListByCampaign(ctx context.Context, campaignID string, page domain.Page) ([]domain.Donation, error) {
	page = page.Normalize()
	rows, err := r.db.Query(ctx, sqlinline.QListDonationsByCampaign, campaignID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanDonation)
}

func (r *DonationRepositoryPG) HasCompletedForCampaign(ctx context.Context, userID, campaignID string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, sqlinline.QHasCompletedDonationForCampaign, userID, campaignID).Scan(&ok)
	return ok, err
}

func (r *DonationRepositoryPG) HasCompletedForCharity(ctx context.Context, userID, charityID string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, sqlinline.QHasCompletedDonationForCharity, userID, charityID).Scan(&ok)
	return ok, err
}

// FailStalePending fails pending donations created before the cutoff.
func (r *DonationRepositoryPG) FailStalePending(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, sqlinline.QFailStalePendingDonations, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanDonation(row pgx.Row) (*domain.Donation, error) {
	var d domain.Donation
	if err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.CampaignID,
		&d.Amount,
		&d.Status,
		&d.PaymentMethod,
		&d.PaymentReference,
		&d.IsAnonymous,
		&d.Message,
		&d.DonorCountry,
		&d.DonorName,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, notFound(err)
	}
	return &d, nil
}

var _ domain.DonationRepository = (*DonationRepositoryPG)(nil)
