package services

import (
	"context"

	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	portsrepo "github.com/flotaops/fleet-finance-backend/internal/core/ports/repositories"
	"github.com/flotaops/fleet-finance-backend/internal/dto"
)

// PendingPaymentSvcFacade defines the settlement/cancellation surface over
// pending payments plus the read paths the HTTP layer needs.
type PendingPaymentSvcFacade interface {
	// Settle drives a payment from PENDING to PAID: authorization, status
	// guard, box resolution, funds check, then the atomic debit + excess
	// cleanup + history + status flip. Idempotent by guard: a second call
	// fails with apperrors.ErrInvalidState and has no side effects.
	Settle(ctx context.Context, paymentID string, actingUserID string) (*domain.SettlementResult, error)

	// Cancel drives a payment from PENDING to CANCELLED. Never touches any box
	// balance or history.
	Cancel(ctx context.Context, paymentID string, actingUserID string) (*domain.PendingPayment, error)

	// CreatePayment opens a pending payment by hand, outside the transaction
	// shortfall flow.
	CreatePayment(ctx context.Context, req dto.CreatePendingPaymentRequest, creatorUserID string) (*domain.PendingPayment, error)

	GetPaymentByID(ctx context.Context, paymentID string) (*domain.PendingPayment, error)
	ListPayments(ctx context.Context, filter portsrepo.PendingPaymentFilter) ([]domain.PendingPayment, error)
}
