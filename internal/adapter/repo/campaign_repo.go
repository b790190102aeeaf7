package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"clearcause/internal/domain"
	"clearcause/internal/infra"
	"clearcause/internal/sqlinline"
)

// CampaignRepositoryPG implements domain.CampaignRepository.
type CampaignRepositoryPG struct {
	db infra.DB
}

func NewCampaignRepository(db infra.DB) *CampaignRepositoryPG {
	return &CampaignRepositoryPG{db: db}
}

// Create inserts the campaign and its milestones in one transaction.
func (r *CampaignRepositoryPG) Create(ctx context.Context, c *domain.Campaign) error {
	return r.db.InTx(ctx, func(tx infra.SQLExecutor) error {
		err := tx.QueryRow(ctx, sqlinline.QInsertCampaign,
			c.CharityID, c.Title, c.Description, c.Category, c.GoalAmount, c.ImageURL, string(c.Status), c.StartDate, c.EndDate,
		).Scan(&c.ID, &c.CurrentAmount, &c.DonorsCount, &c.SeedReleased, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return err
		}
		return insertMilestones(ctx, tx, c)
	})
}

func insertMilestones(ctx context.Context, tx infra.SQLExecutor, c *domain.Campaign) error {
	for i := range c.Milestones {
		m := &c.Milestones[i]
		m.CampaignID = c.ID
		m.Position = i + 1
		if err := tx.QueryRow(ctx, sqlinline.QInsertMilestone, c.ID, m.Title, m.Description, m.TargetAmount, m.Position).
			Scan(&m.ID, &m.Status, &m.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

// GetByID returns the campaign with its milestones.
func (r *CampaignRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	c, err := scanCampaign(r.db.QueryRow(ctx, sqlinline.QSelectCampaignByID, id))
	if err != nil {
		return nil, err
	}
	c.Milestones, err = r.ListMilestones(ctx, id)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CampaignRepositoryPG) List(ctx context.Context, filter domain.CampaignFilter) ([]domain.Campaign, error) {
	page := filter.Page.Normalize()
	rows, err := r.db.Query(ctx, sqlinline.QListCampaigns,
		string(filter.Status), filter.Category, filter.CharityID, filter.Search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanCampaign)
}

// Update writes the editable fields. A non-nil Milestones slice replaces the
// existing milestones.
func (r *CampaignRepositoryPG) Update(ctx context.Context, c *domain.Campaign) error {
	return r.db.InTx(ctx, func(tx infra.SQLExecutor) error {
		err := tx.QueryRow(ctx, sqlinline.QUpdateCampaign,
			c.ID, c.Title, c.Description, c.Category, c.GoalAmount, c.ImageURL, c.StartDate, c.EndDate,
		).Scan(&c.UpdatedAt)
		if err != nil {
			return notFound(err)
		}
		if c.Milestones == nil {
			return nil
		}
		if _, err := tx.Exec(ctx, sqlinline.QDeleteCampaignMilestones, c.ID); err != nil {
			return err
		}
		return insertMilestones(ctx, tx, c)
	})
}

// UpdateStatus moves the campaign from -> to. A campaign that is no longer in
// from yields domain.ErrConflict.
func (r *CampaignRepositoryPG) UpdateStatus(ctx context.Context, id string, from, to domain.CampaignStatus) error {
	tag, err := r.db.Exec(ctx, sqlinline.QUpdateCampaignStatus, id, string(from), string(to))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// Delete removes a draft campaign.
func (r *CampaignRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, sqlinline.QDeleteDraftCampaign, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *CampaignRepositoryPG) ListEndedActive(ctx context.Context, now time.Time) ([]domain.Campaign, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListEndedActiveCampaigns, now)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanCampaign)
}

func (r *CampaignRepositoryPG) ListMilestones(ctx context.Context, campaignID string) ([]domain.Milestone, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListMilestones, campaignID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanMilestone)
}

func (r *CampaignRepositoryPG) GetMilestone(ctx context.Context, id string) (*domain.Milestone, error) {
	return scanMilestone(r.db.QueryRow(ctx, sqlinline.QSelectMilestoneByID, id))
}

// SubmitMilestoneProof attaches proof to a pending or rejected milestone.
func (r *CampaignRepositoryPG) SubmitMilestoneProof(ctx context.Context, id, proofURL, description string) (*domain.Milestone, error) {
	m, err := scanMilestone(r.db.QueryRow(ctx, sqlinline.QSubmitMilestoneProof, id, proofURL, description))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidTransition
	}
	return m, err
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	if err := row.Scan(
		&c.ID,
		&c.CharityID,
		&c.Title,
		&c.Description,
		&c.Category,
		&c.GoalAmount,
		&c.CurrentAmount,
		&c.DonorsCount,
		&c.ImageURL,
		&c.Status,
		&c.StartDate,
		&c.EndDate,
		&c.SeedReleased,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func scanMilestone(row pgx.Row) (*domain.Milestone, error) {
	var m domain.Milestone
	if err := row.Scan(
		&m.ID,
		&m.CampaignID,
		&m.Title,
		&m.Description,
		&m.TargetAmount,
		&m.Position,
		&m.Status,
		&m.ProofURL,
		&m.ProofDescription,
		&m.ReviewNotes,
		&m.VerifiedAt,
		&m.CreatedAt,
	); err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

var _ domain.CampaignRepository = (*CampaignRepositoryPG)(nil)
