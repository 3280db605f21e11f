package dto

import "time"

// CreateLookupRequest carries the fields shared by all lookup-table entries.
type CreateLookupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateTimelineEventRequest carries the fields for appending a timeline event.
type CreateTimelineEventRequest struct {
	OwnerKind string     `json:"ownerKind" binding:"required,oneof=BUSINESS INVESTOR USER"`
	OwnerID   string     `json:"ownerID" binding:"required,uuid"`
	Title     string     `json:"title" binding:"required"`
	Body      string     `json:"body"`
	EventDate *time.Time `json:"eventDate"`
	Position  int        `json:"position"`
}
