package models

import "time"

// TimelineEvent represents a row in the timeline_events table.
type TimelineEvent struct {
	EventID   string    `db:"event_id"`
	OwnerKind string    `db:"owner_kind"`
	OwnerID   string    `db:"owner_id"`
	Title     string    `db:"title"`
	Body      string    `db:"body"`
	EventDate time.Time `db:"event_date"`
	Position  int       `db:"position"`
	AuditFields
}
