package repositories

import (
	"context"

	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
)

// CategoryRepository defines persistence operations for transaction categories.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// PaymentMethodRepository defines persistence operations for payment methods.
type PaymentMethodRepository interface {
	SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) error
	FindPaymentMethodByID(ctx context.Context, methodID string) (*domain.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)
}

// TransactionStateRepository defines persistence operations for transaction states.
type TransactionStateRepository interface {
	SaveTransactionState(ctx context.Context, state domain.TransactionState) error
	FindTransactionStateByID(ctx context.Context, stateID string) (*domain.TransactionState, error)
	ListTransactionStates(ctx context.Context) ([]domain.TransactionState, error)
}
