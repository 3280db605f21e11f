package domain

import "time"

// TimelineOwnerKind tags the owning entity of a timeline event. Owners are a
// tagged union {Kind, ID} rather than a dynamically resolved type name.
type TimelineOwnerKind string

const (
	OwnerBusiness TimelineOwnerKind = "BUSINESS"
	OwnerInvestor TimelineOwnerKind = "INVESTOR"
	OwnerUser     TimelineOwnerKind = "USER"
)

// TimelineEvent is one entry in an owner's ordered timeline.
type TimelineEvent struct {
	EventID   string            `json:"eventID"` // Primary Key (UUID)
	OwnerKind TimelineOwnerKind `json:"ownerKind"`
	OwnerID   string            `json:"ownerID"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	EventDate time.Time         `json:"eventDate"`
	Position  int               `json:"position"` // Sort key within the owner's timeline
	AuditFields
}
