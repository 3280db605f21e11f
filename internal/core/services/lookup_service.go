package services

import (
	"context"
	"time"

	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	portsrepo "github.com/flotaops/fleet-finance-backend/internal/core/ports/repositories"
	portssvc "github.com/flotaops/fleet-finance-backend/internal/core/ports/services"
	"github.com/flotaops/fleet-finance-backend/internal/dto"
	"github.com/google/uuid"
)

type lookupService struct {
	categoryRepo portsrepo.CategoryRepository
	methodRepo   portsrepo.PaymentMethodRepository
	stateRepo    portsrepo.TransactionStateRepository
}

// NewLookupService creates a new lookup-table service.
func NewLookupService(
	categoryRepo portsrepo.CategoryRepository,
	methodRepo portsrepo.PaymentMethodRepository,
	stateRepo portsrepo.TransactionStateRepository,
) portssvc.LookupSvcFacade {
	return &lookupService{
		categoryRepo: categoryRepo,
		methodRepo:   methodRepo,
		stateRepo:    stateRepo,
	}
}

var _ portssvc.LookupSvcFacade = (*lookupService)(nil)

func newAudit(userID string, now time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

func (s *lookupService) CreateCategory(ctx context.Context, req dto.CreateLookupRequest, creatorUserID string) (*domain.Category, error) {
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		AuditFields: newAudit(creatorUserID, time.Now()),
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *lookupService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.ListCategories(ctx)
}

func (s *lookupService) CreatePaymentMethod(ctx context.Context, req dto.CreateLookupRequest, creatorUserID string) (*domain.PaymentMethod, error) {
	method := domain.PaymentMethod{
		PaymentMethodID: uuid.NewString(),
		Name:            req.Name,
		Description:     req.Description,
		IsActive:        true,
		AuditFields:     newAudit(creatorUserID, time.Now()),
	}
	if err := s.methodRepo.SavePaymentMethod(ctx, method); err != nil {
		return nil, err
	}
	return &method, nil
}

func (s *lookupService) ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	return s.methodRepo.ListPaymentMethods(ctx)
}

func (s *lookupService) CreateTransactionState(ctx context.Context, req dto.CreateLookupRequest, creatorUserID string) (*domain.TransactionState, error) {
	state := domain.TransactionState{
		StateID:     uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		AuditFields: newAudit(creatorUserID, time.Now()),
	}
	if err := s.stateRepo.SaveTransactionState(ctx, state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *lookupService) ListTransactionStates(ctx context.Context) ([]domain.TransactionState, error) {
	return s.stateRepo.ListTransactionStates(ctx)
}

type timelineService struct {
	timelineRepo portsrepo.TimelineRepository
}

// NewTimelineService creates a new timeline service.
func NewTimelineService(timelineRepo portsrepo.TimelineRepository) portssvc.TimelineSvcFacade {
	return &timelineService{timelineRepo: timelineRepo}
}

var _ portssvc.TimelineSvcFacade = (*timelineService)(nil)

func (s *timelineService) CreateEvent(ctx context.Context, req dto.CreateTimelineEventRequest, creatorUserID string) (*domain.TimelineEvent, error) {
	now := time.Now()
	eventDate := now
	if req.EventDate != nil {
		eventDate = *req.EventDate
	}

	event := domain.TimelineEvent{
		EventID:     uuid.NewString(),
		OwnerKind:   domain.TimelineOwnerKind(req.OwnerKind),
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		Body:        req.Body,
		EventDate:   eventDate,
		Position:    req.Position,
		AuditFields: newAudit(creatorUserID, now),
	}
	if err := s.timelineRepo.SaveEvent(ctx, event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *timelineService) ListEventsByOwner(ctx context.Context, ownerKind domain.TimelineOwnerKind, ownerID string, limit, offset int) ([]domain.TimelineEvent, error) {
	return s.timelineRepo.ListEventsByOwner(ctx, ownerKind, ownerID, limit, offset)
}
