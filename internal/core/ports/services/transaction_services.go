package services

import (
	"context"

	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	"github.com/flotaops/fleet-finance-backend/internal/dto"
)

// TransactionSvcFacade defines the financial transaction service surface.
type TransactionSvcFacade interface {
	// CreateTransaction persists a transaction and its cash-movement line-item.
	// When the collected amount falls short of the transaction amount, the
	// shortfall is recorded as the excess amount and a pending payment is
	// opened for it, all atomically.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.FinancialTransaction, *domain.PendingPayment, error)

	GetTransactionByID(ctx context.Context, transactionID string) (*domain.FinancialTransaction, error)

	// GetMovementsBox returns the cash-movement line-item attached to a
	// transaction, or apperrors.ErrNotFound when none exists.
	GetMovementsBox(ctx context.Context, transactionID string) (*domain.MovementsBox, error)

	ListTransactions(ctx context.Context, businessID string, limit, offset int) ([]domain.FinancialTransaction, error)
}
