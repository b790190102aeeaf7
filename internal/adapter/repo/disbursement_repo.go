package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"clearcause/internal/domain"
	"clearcause/internal/infra"
	"clearcause/internal/sqlinline"
)

// DisbursementRepositoryPG implements domain.DisbursementRepository.
type DisbursementRepositoryPG struct {
	db infra.DB
}

func NewDisbursementRepository(db infra.DB) *DisbursementRepositoryPG {
	return &DisbursementRepositoryPG{db: db}
}

// ReleaseSeed flags the campaign, records the disbursement and credits the
// charity in one transaction. The seed_released guard and the partial unique
// index both turn a repeat into domain.ErrAlreadyReleased.
func (r *DisbursementRepositoryPG) ReleaseSeed(ctx context.Context, d *domain.Disbursement) error {
	return r.db.InTx(ctx, func(tx infra.SQLExecutor) error {
		tag, err := tx.Exec(ctx, sqlinline.QMarkSeedReleased, d.CampaignID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrAlreadyReleased
		}
		if err := insertDisbursement(ctx, tx, d); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, sqlinline.QCreditCharityBalance, d.CharityID, d.Amount)
		return err
	})
}

// ReleaseMilestone verifies a milestone awaiting review and pays its share.
func (r *DisbursementRepositoryPG) ReleaseMilestone(ctx context.Context, d *domain.Disbursement, notes string) (*domain.Milestone, error) {
	if d.MilestoneID == nil {
		return nil, errors.New("milestone disbursement without milestone id")
	}
	var out *domain.Milestone
	err := r.db.InTx(ctx, func(tx infra.SQLExecutor) error {
		m, err := scanMilestone(tx.QueryRow(ctx, sqlinline.QVerifyMilestone, *d.MilestoneID, notes))
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrAlreadyReleased
		}
		if err != nil {
			return err
		}
		if err := insertDisbursement(ctx, tx, d); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sqlinline.QCreditCharityBalance, d.CharityID, d.Amount); err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RejectMilestone sends a milestone awaiting review back to the charity.
func (r *DisbursementRepositoryPG) RejectMilestone(ctx context.Context, milestoneID, notes string) (*domain.Milestone, error) {
	m, err := scanMilestone(r.db.QueryRow(ctx, sqlinline.QRejectMilestone, milestoneID, notes))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidTransition
	}
	return m, err
}

func (r *DisbursementRepositoryPG) ListByCampaign(ctx context.Context, campaignID string) ([]domain.Disbursement, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListDisbursementsByCampaign, campaignID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanDisbursement)
}

func insertDisbursement(ctx context.Context, tx infra.SQLExecutor, d *domain.Disbursement) error {
	milestoneID := ""
	if d.MilestoneID != nil {
		milestoneID = *d.MilestoneID
	}
	err := tx.QueryRow(ctx, sqlinline.QInsertDisbursement,
		d.CampaignID, d.CharityID, milestoneID, string(d.Kind), d.Amount, d.ReleasedBy,
	).Scan(&d.ID, &d.CreatedAt)
	if infra.IsUniqueViolation(err) {
		return domain.ErrAlreadyReleased
	}
	return err
}

func scanDisbursement(row pgx.Row) (*domain.Disbursement, error) {
	var d domain.Disbursement
	if err := row.Scan(&d.ID, &d.CampaignID, &d.CharityID, &d.MilestoneID, &d.Kind, &d.Amount, &d.ReleasedBy, &d.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &d, nil
}

var _ domain.DisbursementRepository = (*DisbursementRepositoryPG)(nil)
