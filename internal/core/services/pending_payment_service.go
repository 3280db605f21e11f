package services

import (
	"context"
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

type pendingPaymentService struct {
	paymentRepo     portsrepo.PendingPaymentRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
	resolver        portssvc.BoxResolverSvc
	authorizer      portssvc.AdminAuthorizerSvc
}

// NewPendingPaymentService creates a new pending payment service.
func NewPendingPaymentService(
	paymentRepo portsrepo.PendingPaymentRepositoryFacade,
	transactionRepo portsrepo.TransactionRepositoryFacade,
	resolver portssvc.BoxResolverSvc,
	authorizer portssvc.AdminAuthorizerSvc,
) portssvc.PendingPaymentSvcFacade {
	return &pendingPaymentService{
		paymentRepo:     paymentRepo,
		transactionRepo: transactionRepo,
		resolver:        resolver,
		authorizer:      authorizer,
	}
}

var _ portssvc.PendingPaymentSvcFacade = (*pendingPaymentService)(nil)

// Settle drives a payment from PENDING to PAID. The sequence is authorization,
// status guard, box resolution, an advisory funds check, then the atomic
// settlement in the repository where funds are re-checked under the box row
// lock. A payment that already left PENDING fails with ErrInvalidState and
// nothing is written.
func (s *pendingPaymentService) Settle(ctx context.Context, paymentID string, actingUserID string) (*domain.SettlementResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorizer.RequireAdmin(ctx, actingUserID); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !payment.IsPending() {
		return nil, fmt.Errorf("%w: pending payment %s has status %s",
			apperrors.ErrInvalidState, paymentID, payment.Status)
	}

	box, err := s.resolver.ResolveBox(ctx, payment.BusinessID, actingUserID)
	if err != nil {
		return nil, err
	}

	if box.Balance.LessThan(payment.Amount) {
		return nil, fmt.Errorf("%w: box %s holds %s, settlement requires %s",
			apperrors.ErrInsufficientFunds, box.BoxID, box.Balance.String(), payment.Amount.String())
	}

	now := time.Now()
	movement := domain.BoxMovement{
		MovementID:    uuid.NewString(),
		BoxID:         box.BoxID,
		Amount:        payment.Amount.Neg(),
		Kind:          domain.MovementExpense,
		Description:   fmt.Sprintf("PAGO PENDIENTE PROCESADO ID: %s", payment.PaymentID),
		TransactionID: payment.TransactionID,
		UserID:        actingUserID,
		CreatedAt:     now,
	}

	outcome, err := s.paymentRepo.SettlePayment(ctx, *payment, box.BoxID, movement, now, actingUserID)
	if err != nil {
		logger.Warn("Settlement failed",
			slog.String("payment_id", paymentID),
			slog.String("box_id", box.BoxID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	settled := *payment
	settled.Status = domain.PaymentPaid
	settled.PaidAt = &now
	settled.LastUpdatedAt = now
	settled.LastUpdatedBy = actingUserID

	var txn *domain.FinancialTransaction
	if payment.TransactionID != nil {
		txn, err = s.transactionRepo.FindTransactionByID(ctx, *payment.TransactionID)
		if err != nil {
			// The settlement is committed; a failed read-back only degrades the
			// response payload.
			logger.Warn("Failed to reload settled transaction",
				slog.String("transaction_id", *payment.TransactionID),
				slog.String("error", err.Error()),
			)
			txn = nil
			err = nil
		}
	}

	settledBox := *box
	settledBox.Balance = outcome.BalanceAfter
	settledBox.LastUpdatedAt = now
	settledBox.LastUpdatedBy = actingUserID

	logger.Info("Pending payment settled",
		slog.String("payment_id", paymentID),
		slog.String("box_id", box.BoxID),
		slog.String("amount", payment.Amount.String()),
		slog.String("balance_after", outcome.BalanceAfter.String()),
	)

	return &domain.SettlementResult{
		Payment:       settled,
		Transaction:   txn,
		Box:           settledBox,
		BalanceBefore: outcome.BalanceBefore,
		BalanceAfter:  outcome.BalanceAfter,
	}, nil
}

// Cancel drives a payment from PENDING to CANCELLED. No box balance or history
// is touched; the linked transaction keeps its excess amount as a record of
// what was never collected.
func (s *pendingPaymentService) Cancel(ctx context.Context, paymentID string, actingUserID string) (*domain.PendingPayment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorizer.RequireAdmin(ctx, actingUserID); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !payment.IsPending() {
		return nil, fmt.Errorf("%w: pending payment %s has status %s",
			apperrors.ErrInvalidState, paymentID, payment.Status)
	}

	now := time.Now()
	if err := s.paymentRepo.MarkCancelled(ctx, paymentID, actingUserID, now); err != nil {
		return nil, err
	}

	payment.Status = domain.PaymentCancelled
	payment.LastUpdatedAt = now
	payment.LastUpdatedBy = actingUserID

	logger.Info("Pending payment cancelled", slog.String("payment_id", paymentID))
	return payment, nil
}

// CreatePayment opens a pending payment by hand, outside the transaction
// shortfall flow. The payment starts PENDING with no linked transaction.
func (s *pendingPaymentService) CreatePayment(ctx context.Context, req dto.CreatePendingPaymentRequest, creatorUserID string) (*domain.PendingPayment, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: pending payment amount must be positive", apperrors.ErrValidation)
	}
	if err := checkAmountScale(req.Amount, "pending payment amount"); err != nil {
		return nil, err
	}

	now := time.Now()
	payment := domain.PendingPayment{
		PaymentID:   uuid.NewString(),
		BusinessID:  req.BusinessID,
		DriverID:    req.DriverID,
		Amount:      req.Amount,
		Description: req.Description,
		Status:      domain.PaymentPending,
		AuditFields: newAudit(creatorUserID, now),
	}
	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Pending payment opened",
		slog.String("payment_id", payment.PaymentID),
		slog.String("amount", payment.Amount.String()),
	)
	return &payment, nil
}

func (s *pendingPaymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.PendingPayment, error) {
	return s.paymentRepo.FindPaymentByID(ctx, paymentID)
}

func (s *pendingPaymentService) ListPayments(ctx context.Context, filter portsrepo.PendingPaymentFilter) ([]domain.PendingPayment, error) {
	return s.paymentRepo.ListPayments(ctx, filter)
}
