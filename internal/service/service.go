// Package service holds the use cases of the platform. Every exported method
// returns *domain.Error (or an error domain.AsError understands) so handlers
// can render it unchanged.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"clearcause/internal/domain"
	"clearcause/internal/events"
)

// Auditor records mutations for the admin audit trail. Recording is best-effort.
type Auditor interface {
	Record(ctx context.Context, actorID, action, entityType, entityID string, details any)
}

// Base carries the collaborators every service shares.
type Base struct {
	Audit  Auditor
	Events events.Publisher
	Logger zerolog.Logger
	Now    func() time.Time
}

func (b Base) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

func (b Base) audit(ctx context.Context, actor domain.Actor, action, entityType, entityID string, details any) {
	if b.Audit == nil {
		return
	}
	b.Audit.Record(ctx, actor.UserID, action, entityType, entityID, details)
}

func (b Base) publish(ctx context.Context, routingKey string, data any) {
	if b.Events == nil {
		return
	}
	if err := b.Events.Publish(ctx, routingKey, data); err != nil {
		b.Logger.Warn().Err(err).Str("routing_key", routingKey).Msg("publish event failed")
	}
}

func requireAuth(actor domain.Actor) error {
	if actor.Anonymous() {
		return domain.Unauthorized("authentication required")
	}
	return nil
}

func requireRole(actor domain.Actor, roles ...domain.UserRole) error {
	if err := requireAuth(actor); err != nil {
		return err
	}
	for _, r := range roles {
		if actor.Role == r {
			return nil
		}
	}
	return domain.Forbidden("your role cannot perform this action")
}

func requireAdmin(actor domain.Actor) error {
	return requireRole(actor, domain.UserRoleAdmin)
}

// lookup turns a repository miss into a typed not-found error.
func lookup(err error, resource string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound(resource)
	}
	return fmt.Errorf("load %s: %w", resource, err)
}

func validateURL(field, raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.Validation("%s must be an http(s) URL", field)
	}
	return nil
}

func validateRating(rating int, comment string) error {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return domain.Validation("rating must be between %d and %d", domain.MinRating, domain.MaxRating)
	}
	if len([]rune(comment)) > domain.MaxCommentLength {
		return domain.Validation("comment must be at most %d characters", domain.MaxCommentLength)
	}
	return nil
}

func trim(s string) string { return strings.TrimSpace(s) }
