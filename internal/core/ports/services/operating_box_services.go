package services

import (
	"context"

	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	"github.com/flotaops/fleet-finance-backend/internal/dto"
)

// BoxResolverSvc is the policy for choosing (or lazily creating) the box that
// should fund a settlement.
type BoxResolverSvc interface {
	// ResolveBox returns, in order of preference: the active box owned by the
	// business, any active box system-wide (only when the global fallback
	// policy is enabled), or a newly created box for the business seeded at
	// balance zero and attributed to the acting user.
	ResolveBox(ctx context.Context, businessID *string, actingUserID string) (*domain.OperatingBox, error)
}

// BoxSvcFacade defines the operating box service surface.
type BoxSvcFacade interface {
	BoxResolverSvc

	CreateBox(ctx context.Context, req dto.CreateBoxRequest, creatorUserID string) (*domain.OperatingBox, error)
	GetBoxByID(ctx context.Context, boxID string) (*domain.OperatingBox, error)
	ListBoxes(ctx context.Context, limit, offset int) ([]domain.OperatingBox, error)

	// RecordMovement writes exactly one history entry for the box. It does not
	// mutate the balance; the caller owns the arithmetic.
	RecordMovement(ctx context.Context, params dto.RecordMovementParams) (*domain.BoxMovement, error)

	// AdjustBox atomically applies a signed adjustment to the box balance and
	// records the matching ADJUSTMENT movement. Admin only.
	AdjustBox(ctx context.Context, boxID string, req dto.AdjustBoxRequest, actingUserID string) (*domain.BoxMovement, error)

	// ListMovements returns the box's history, newest first, with a token for
	// the next page.
	ListMovements(ctx context.Context, boxID string, limit int, nextToken *string) ([]domain.BoxMovement, *string, error)

	// DeactivateBox marks a box inactive so the resolver stops picking it.
	// Admin only. The movement history stays readable.
	DeactivateBox(ctx context.Context, boxID string, actingUserID string) error

	// CheckBalance compares the stored balance against the sum of recorded
	// movement amounts.
	CheckBalance(ctx context.Context, boxID string) (*dto.BoxBalanceCheck, error)
}
