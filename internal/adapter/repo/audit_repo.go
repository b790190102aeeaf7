package repo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"clearcause/internal/domain"
	"clearcause/internal/infra"
	"clearcause/internal/sqlinline"
)

// AuditRepositoryPG implements domain.AuditRepository.
type AuditRepositoryPG struct {
	db infra.DB
}

func NewAuditRepository(db infra.DB) *AuditRepositoryPG {
	return &AuditRepositoryPG{db: db}
}

func (r *AuditRepositoryPG) Insert(ctx context.Context, e *domain.AuditLog) error {
	var details []byte
	if len(e.Details) > 0 {
		details = []byte(e.Details)
	}
	return r.db.QueryRow(ctx, sqlinline.QInsertAuditLog, e.ActorID, e.Action, e.EntityType, e.EntityID, details).
		Scan(&e.ID, &e.CreatedAt)
}

func (r *AuditRepositoryPG) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditLog, error) {
	page := filter.Page.Normalize()
	rows, err := r.db.Query(ctx, sqlinline.QListAuditLogs,
		filter.ActorID, filter.EntityType, filter.EntityID, filter.Action, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanAuditLog)
}

func scanAuditLog(row pgx.Row) (*domain.AuditLog, error) {
	var (
		e       domain.AuditLog
		details []byte
	)
	if err := row.Scan(&e.ID, &e.ActorID, &e.Action, &e.EntityType, &e.EntityID, &details, &e.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	if len(details) > 0 {
		e.Details = details
	}
	return &e, nil
}

var _ domain.AuditRepository = (*AuditRepositoryPG)(nil)
