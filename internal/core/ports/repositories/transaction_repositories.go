package repositories

import (
	"context"

	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
)

// TransactionReader defines read operations for financial transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.FinancialTransaction, error)

	// FindMovementsBoxByTransactionID retrieves the cash-movement line-item
	// attached to a transaction, or apperrors.ErrNotFound when none exists.
	FindMovementsBoxByTransactionID(ctx context.Context, transactionID string) (*domain.MovementsBox, error)

	// ListTransactions retrieves a paginated list of transactions for a business.
	ListTransactions(ctx context.Context, businessID string, limit, offset int) ([]domain.FinancialTransaction, error)
}

// TransactionWriter defines write operations for financial transaction data.
type TransactionWriter interface {
	// SaveTransaction persists a transaction together with its cash-movement
	// line-item and, when the collected amount fell short, the pending payment
	// opened for the shortfall. All rows are written in one database
	// transaction; movementsBox and pending may be nil.
	SaveTransaction(ctx context.Context, txn domain.FinancialTransaction, movementsBox *domain.MovementsBox, pending *domain.PendingPayment) error
}

// TransactionRepositoryFacade combines the transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
