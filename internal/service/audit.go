package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"clearcause/internal/domain"
)

// AuditService writes and lists audit entries.
type AuditService struct {
	repo   domain.AuditRepository
	logger zerolog.Logger
}

func NewAuditService(repo domain.AuditRepository, logger zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

// Record stores one entry. Failures are logged and never reach the caller.
func (s *AuditService) Record(ctx context.Context, actorID, action, entityType, entityID string, details any) {
	entry := &domain.AuditLog{ActorID: actorID, Action: action, EntityType: entityType, EntityID: entityID}
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			s.logger.Warn().Err(err).Str("action", action).Msg("audit details not serialisable")
		} else {
			entry.Details = raw
		}
	}
	if err := s.repo.Insert(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Error().Err(err).
			Str("action", action).
			Str("entity_type", entityType).
			Str("entity_id", entityID).
			Msg("audit record failed")
	}
}

// List returns audit entries for admins.
func (s *AuditService) List(ctx context.Context, actor domain.Actor, filter domain.AuditFilter) ([]domain.AuditLog, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

var _ Auditor = (*AuditService)(nil)
