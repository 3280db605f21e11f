package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/flotaops/fleet-finance-backend/internal/apperrors"
	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	portsrepo "github.com/flotaops/fleet-finance-backend/internal/core/ports/repositories"
	portssvc "github.com/flotaops/fleet-finance-backend/internal/core/ports/services"
	"github.com/flotaops/fleet-finance-backend/internal/dto"
	"github.com/flotaops/fleet-finance-backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type boxService struct {
	boxRepo      portsrepo.OperatingBoxRepositoryWithTx
	businessRepo portsrepo.BusinessRepository
	authorizer   portssvc.AdminAuthorizerSvc

	// globalFallback lets the resolver fall back to any active box system-wide
	// when the business has none.
	globalFallback bool
}

// NewBoxService creates a new operating box service.
func NewBoxService(
	boxRepo portsrepo.OperatingBoxRepositoryWithTx,
	businessRepo portsrepo.BusinessRepository,
	authorizer portssvc.AdminAuthorizerSvc,
	globalFallback bool,
) portssvc.BoxSvcFacade {
	return &boxService{
		boxRepo:        boxRepo,
		businessRepo:   businessRepo,
		authorizer:     authorizer,
		globalFallback: globalFallback,
	}
}

var _ portssvc.BoxSvcFacade = (*boxService)(nil)

// CreateBox creates a new operating box at balance zero.
func (s *boxService) CreateBox(ctx context.Context, req dto.CreateBoxRequest, creatorUserID string) (*domain.OperatingBox, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.BusinessID != nil {
		if _, err := s.businessRepo.FindBusinessByID(ctx, *req.BusinessID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	box := domain.OperatingBox{
		BoxID:       uuid.NewString(),
		BusinessID:  req.BusinessID,
		Name:        req.Name,
		Balance:     decimal.Zero,
		Description: req.Description,
		IsActive:    true,
		AuditFields: newAudit(creatorUserID, now),
	}

	if err := s.boxRepo.SaveBox(ctx, box); err != nil {
		logger.Error("Failed to save operating box", slog.String("name", req.Name), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Operating box created", slog.String("box_id", box.BoxID), slog.String("name", box.Name))
	return &box, nil
}

func (s *boxService) GetBoxByID(ctx context.Context, boxID string) (*domain.OperatingBox, error) {
	return s.boxRepo.FindBoxByID(ctx, boxID)
}

func (s *boxService) ListBoxes(ctx context.Context, limit, offset int) ([]domain.OperatingBox, error) {
	return s.boxRepo.ListBoxes(ctx, limit, offset)
}

// ResolveBox chooses the box that should fund an operation, in order of
// preference: the business's own active box, any active box system-wide when
// the global fallback policy is enabled, and finally a box created on the spot
// for the business, seeded at balance zero and attributed to the acting user.
func (s *boxService) ResolveBox(ctx context.Context, businessID *string, actingUserID string) (*domain.OperatingBox, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if businessID != nil {
		box, err := s.boxRepo.FindActiveBoxByBusinessID(ctx, *businessID)
		if err == nil {
			return box, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	if s.globalFallback {
		box, err := s.boxRepo.FindAnyActiveBox(ctx)
		if err == nil {
			logger.Info("Resolved settlement box via global fallback", slog.String("box_id", box.BoxID))
			return box, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	name := "Caja General"
	if businessID != nil {
		business, err := s.businessRepo.FindBusinessByID(ctx, *businessID)
		if err != nil {
			return nil, err
		}
		name = fmt.Sprintf("Caja %s", business.Name)
	}

	now := time.Now()
	box := domain.OperatingBox{
		BoxID:       uuid.NewString(),
		BusinessID:  businessID,
		Name:        name,
		Balance:     decimal.Zero,
		IsActive:    true,
		AuditFields: newAudit(actingUserID, now),
	}
	if err := s.boxRepo.SaveBox(ctx, box); err != nil {
		return nil, err
	}

	logger.Info("Operating box created lazily during resolution",
		slog.String("box_id", box.BoxID),
		slog.String("name", box.Name),
	)
	return &box, nil
}

// RecordMovement writes exactly one history entry for the box. It never
// mutates the stored balance. When both balance bounds are omitted they
// default to the box's current balance; when only BalanceBefore is supplied,
// BalanceAfter is computed from it and the signed amount.
func (s *boxService) RecordMovement(ctx context.Context, params dto.RecordMovementParams) (*domain.BoxMovement, error) {
	box, err := s.boxRepo.FindBoxByID(ctx, params.BoxID)
	if err != nil {
		return nil, err
	}

	var before, after decimal.Decimal
	switch {
	case params.BalanceBefore == nil && params.BalanceAfter == nil:
		before = box.Balance
		after = box.Balance
	case params.BalanceBefore != nil && params.BalanceAfter == nil:
		before = *params.BalanceBefore
		after = before.Add(params.Amount)
	case params.BalanceBefore != nil && params.BalanceAfter != nil:
		before = *params.BalanceBefore
		after = *params.BalanceAfter
	default:
		return nil, fmt.Errorf("%w: balanceAfter cannot be supplied without balanceBefore", apperrors.ErrValidation)
	}

	movement := domain.BoxMovement{
		MovementID:    uuid.NewString(),
		BoxID:         params.BoxID,
		Amount:        params.Amount,
		BalanceBefore: before,
		BalanceAfter:  after,
		Kind:          params.Kind,
		Description:   params.Description,
		TransactionID: params.TransactionID,
		UserID:        params.ActingUserID,
		CreatedAt:     time.Now(),
	}
	if err := s.boxRepo.SaveMovement(ctx, movement); err != nil {
		return nil, err
	}
	return &movement, nil
}

// AdjustBox atomically applies a signed adjustment to the box balance and
// records the matching ADJUSTMENT movement. Admin only.
func (s *boxService) AdjustBox(ctx context.Context, boxID string, req dto.AdjustBoxRequest, actingUserID string) (*domain.BoxMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorizer.RequireAdmin(ctx, actingUserID); err != nil {
		return nil, err
	}
	if req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: adjustment amount cannot be zero", apperrors.ErrValidation)
	}
	if err := checkAmountScale(req.Amount, "adjustment amount"); err != nil {
		return nil, err
	}

	tx, err := s.boxRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.boxRepo.Rollback(ctx, tx) }()

	box, err := s.boxRepo.FindBoxByIDForUpdate(ctx, tx, boxID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	before := box.Balance
	after := before.Add(req.Amount)

	// The box balance is never persisted negative.
	if after.IsNegative() {
		return nil, fmt.Errorf("%w: box %s holds %s, adjustment of %s would overdraw it",
			apperrors.ErrInsufficientFunds, boxID, before.String(), req.Amount.String())
	}

	if err := s.boxRepo.UpdateBoxBalanceInTx(ctx, tx, boxID, req.Amount, actingUserID, now); err != nil {
		return nil, err
	}

	movement := domain.BoxMovement{
		MovementID:    uuid.NewString(),
		BoxID:         boxID,
		Amount:        req.Amount,
		BalanceBefore: before,
		BalanceAfter:  after,
		Kind:          domain.MovementAdjustment,
		Description:   req.Description,
		UserID:        actingUserID,
		CreatedAt:     now,
	}
	if err := s.boxRepo.SaveMovementInTx(ctx, tx, movement); err != nil {
		return nil, err
	}

	if err := s.boxRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Operating box adjusted",
		slog.String("box_id", boxID),
		slog.String("amount", req.Amount.String()),
		slog.String("balance_after", after.String()),
	)
	return &movement, nil
}

func (s *boxService) ListMovements(ctx context.Context, boxID string, limit int, nextToken *string) ([]domain.BoxMovement, *string, error) {
	if _, err := s.boxRepo.FindBoxByID(ctx, boxID); err != nil {
		return nil, nil, err
	}
	return s.boxRepo.ListMovementsByBoxID(ctx, boxID, limit, nextToken)
}

// DeactivateBox marks a box inactive. Admin only. The history remains
// readable; the resolver simply stops picking the box.
func (s *boxService) DeactivateBox(ctx context.Context, boxID string, actingUserID string) error {
	if err := s.authorizer.RequireAdmin(ctx, actingUserID); err != nil {
		return err
	}
	if err := s.boxRepo.DeactivateBox(ctx, boxID, actingUserID, time.Now()); err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Operating box deactivated", slog.String("box_id", boxID))
	return nil
}

// CheckBalance reconciles the stored balance against the movement ledger. A
// mismatch means a balance change bypassed the recorder.
func (s *boxService) CheckBalance(ctx context.Context, boxID string) (*dto.BoxBalanceCheck, error) {
	box, err := s.boxRepo.FindBoxByID(ctx, boxID)
	if err != nil {
		return nil, err
	}
	sum, err := s.boxRepo.SumMovementAmounts(ctx, boxID)
	if err != nil {
		return nil, err
	}
	return &dto.BoxBalanceCheck{
		BoxID:         boxID,
		StoredBalance: box.Balance,
		MovementSum:   sum,
		Consistent:    box.Balance.Equal(sum),
	}, nil
}
