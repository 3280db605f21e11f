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

type transactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	businessRepo    portsrepo.BusinessRepository
	categoryRepo    portsrepo.CategoryRepository
	methodRepo      portsrepo.PaymentMethodRepository
	stateRepo       portsrepo.TransactionStateRepository
}

// NewTransactionService creates a new financial transaction service.
func NewTransactionService(
	transactionRepo portsrepo.TransactionRepositoryFacade,
	businessRepo portsrepo.BusinessRepository,
	categoryRepo portsrepo.CategoryRepository,
	methodRepo portsrepo.PaymentMethodRepository,
	stateRepo portsrepo.TransactionStateRepository,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		businessRepo:    businessRepo,
		categoryRepo:    categoryRepo,
		methodRepo:      methodRepo,
		stateRepo:       stateRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction records a transaction with its cash-movement line-item.
// When the collected amount falls short of the transaction amount, the
// shortfall becomes the excess amount and a pending payment is opened for it;
// all rows land in one database transaction.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.FinancialTransaction, *domain.PendingPayment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: transaction amount must be positive", apperrors.ErrValidation)
	}
	if err := checkAmountScale(req.Amount, "transaction amount"); err != nil {
		return nil, nil, err
	}

	collected := req.Amount
	if req.CollectedAmount != nil {
		collected = *req.CollectedAmount
	}
	if collected.IsNegative() {
		return nil, nil, fmt.Errorf("%w: collected amount cannot be negative", apperrors.ErrValidation)
	}
	if err := checkAmountScale(collected, "collected amount"); err != nil {
		return nil, nil, err
	}
	if collected.GreaterThan(req.Amount) {
		return nil, nil, fmt.Errorf("%w: collected amount %s exceeds transaction amount %s",
			apperrors.ErrValidation, collected.String(), req.Amount.String())
	}

	if _, err := s.businessRepo.FindBusinessByID(ctx, req.BusinessID); err != nil {
		return nil, nil, err
	}
	if _, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID); err != nil {
		return nil, nil, err
	}
	if _, err := s.methodRepo.FindPaymentMethodByID(ctx, req.PaymentMethodID); err != nil {
		return nil, nil, err
	}
	if _, err := s.stateRepo.FindTransactionStateByID(ctx, req.StateID); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	transactionDate := now
	if req.TransactionDate != nil {
		transactionDate = *req.TransactionDate
	}

	excess := req.Amount.Sub(collected)
	audit := newAudit(creatorUserID, now)

	txn := domain.FinancialTransaction{
		TransactionID:   uuid.NewString(),
		BusinessID:      req.BusinessID,
		VehicleID:       req.VehicleID,
		DriverID:        req.DriverID,
		CategoryID:      req.CategoryID,
		PaymentMethodID: req.PaymentMethodID,
		StateID:         req.StateID,
		Amount:          req.Amount,
		CollectedAmount: collected,
		ExcessAmount:    excess,
		Description:     req.Description,
		TransactionDate: transactionDate,
		AuditFields:     audit,
	}

	movementsBox := domain.MovementsBox{
		MovementBoxID: uuid.NewString(),
		TransactionID: txn.TransactionID,
		Amount:        collected,
		ExcessAmount:  excess,
		AuditFields:   audit,
	}

	var pending *domain.PendingPayment
	if excess.IsPositive() {
		pending = &domain.PendingPayment{
			PaymentID:     uuid.NewString(),
			BusinessID:    &txn.BusinessID,
			DriverID:      req.DriverID,
			TransactionID: &txn.TransactionID,
			Amount:        excess,
			Description:   fmt.Sprintf("Saldo pendiente de transaccion %s", txn.TransactionID),
			Status:        domain.PaymentPending,
			AuditFields:   audit,
		}
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn, &movementsBox, pending); err != nil {
		logger.Error("Failed to save transaction",
			slog.String("business_id", req.BusinessID),
			slog.String("error", err.Error()),
		)
		return nil, nil, err
	}

	logger.Info("Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", txn.Amount.String()),
		slog.String("excess", excess.String()),
	)
	return &txn, pending, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.FinancialTransaction, error) {
	return s.transactionRepo.FindTransactionByID(ctx, transactionID)
}

func (s *transactionService) GetMovementsBox(ctx context.Context, transactionID string) (*domain.MovementsBox, error) {
	return s.transactionRepo.FindMovementsBoxByTransactionID(ctx, transactionID)
}

func (s *transactionService) ListTransactions(ctx context.Context, businessID string, limit, offset int) ([]domain.FinancialTransaction, error) {
	return s.transactionRepo.ListTransactions(ctx, businessID, limit, offset)
}
