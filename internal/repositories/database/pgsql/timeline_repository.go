package pgsql

import (
	"context"
	"fmt"

	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	portsrepo "github.com/flotaops/fleet-finance-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTimelineRepository struct {
	BaseRepository
}

func newPgxTimelineRepository(pool *pgxpool.Pool) portsrepo.TimelineRepository {
	return &PgxTimelineRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TimelineRepository = (*PgxTimelineRepository)(nil)

// SaveEvent inserts a new timeline event.
func (r *PgxTimelineRepository) SaveEvent(ctx context.Context, event domain.TimelineEvent) error {
	query := `
		INSERT INTO timeline_events (event_id, owner_kind, owner_id, title, body, event_date, position, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		event.EventID,
		string(event.OwnerKind),
		event.OwnerID,
		event.Title,
		event.Body,
		event.EventDate,
		event.Position,
		event.CreatedAt,
		event.CreatedBy,
		event.LastUpdatedAt,
		event.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save timeline event %s: %w", event.EventID, err)
	}
	return nil
}

// ListEventsByOwner retrieves an owner's events ordered by position then creation time.
func (r *PgxTimelineRepository) ListEventsByOwner(ctx context.Context, ownerKind domain.TimelineOwnerKind, ownerID string, limit, offset int) ([]domain.TimelineEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT event_id, owner_kind, owner_id, title, body, event_date, position, created_at, created_by, last_updated_at, last_updated_by
		FROM timeline_events
		WHERE owner_kind = $1 AND owner_id = $2
		ORDER BY position, created_at
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, query, string(ownerKind), ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list timeline events for %s %s: %w", ownerKind, ownerID, err)
	}
	defer rows.Close()

	events := []domain.TimelineEvent{}
	for rows.Next() {
		var e domain.TimelineEvent
		var kind string
		if err := rows.Scan(
			&e.EventID,
			&kind,
			&e.OwnerID,
			&e.Title,
			&e.Body,
			&e.EventDate,
			&e.Position,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan timeline event row: %w", err)
		}
		e.OwnerKind = domain.TimelineOwnerKind(kind)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating timeline event rows: %w", err)
	}
	return events, nil
}
