package repositories

import (
	"context"

	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
)

// TimelineRepository defines persistence operations for timeline events.
type TimelineRepository interface {
	SaveEvent(ctx context.Context, event domain.TimelineEvent) error

	// ListEventsByOwner retrieves an owner's events ordered by (position,
	// created_at).
	ListEventsByOwner(ctx context.Context, ownerKind domain.TimelineOwnerKind, ownerID string, limit, offset int) ([]domain.TimelineEvent, error)
}
