package services

import (
	"context"

	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	"github.com/flotaops/fleet-finance-backend/internal/dto"
)

// LookupSvcFacade defines the lookup-table service surface (categories,
// payment methods, transaction states).
type LookupSvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateLookupRequest, creatorUserID string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)

	CreatePaymentMethod(ctx context.Context, req dto.CreateLookupRequest, creatorUserID string) (*domain.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)

	CreateTransactionState(ctx context.Context, req dto.CreateLookupRequest, creatorUserID string) (*domain.TransactionState, error)
	ListTransactionStates(ctx context.Context) ([]domain.TransactionState, error)
}

// TimelineSvcFacade defines the timeline service surface.
type TimelineSvcFacade interface {
	CreateEvent(ctx context.Context, req dto.CreateTimelineEventRequest, creatorUserID string) (*domain.TimelineEvent, error)
	ListEventsByOwner(ctx context.Context, ownerKind domain.TimelineOwnerKind, ownerID string, limit, offset int) ([]domain.TimelineEvent, error)
}
