package repositories

import (
	"context"
	"time"

	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PendingPaymentFilter narrows a pending-payment listing.
type PendingPaymentFilter struct {
	BusinessID *string
	DriverID   *string
	Status     *domain.PendingPaymentStatus
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// SettleOutcome reports the authoritative balance bounds captured under the
// box row lock during a settlement.
type SettleOutcome struct {
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
}

// PendingPaymentReader defines read operations for pending payment data.
type PendingPaymentReader interface {
	// FindPaymentByID retrieves a pending payment by its unique identifier.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.PendingPayment, error)

	// ListPayments retrieves pending payments matching the filter, newest first.
	ListPayments(ctx context.Context, filter PendingPaymentFilter) ([]domain.PendingPayment, error)
}

// PendingPaymentWriter defines write operations for pending payment data.
type PendingPaymentWriter interface {
	// SavePayment persists a new pending payment.
	SavePayment(ctx context.Context, payment domain.PendingPayment) error

	// MarkCancelled flips a payment from PENDING to CANCELLED. Returns
	// apperrors.ErrInvalidState if the payment is no longer pending.
	MarkCancelled(ctx context.Context, paymentID string, userID string, now time.Time) error
}

// PendingPaymentSettler performs the atomic settlement unit: lock the box row,
// re-check funds, debit the balance, zero the linked transaction's and cash
// movement's excess amounts, insert the audit movement, and flip the payment
// to PAID, all in one database transaction.
type PendingPaymentSettler interface {
	// SettlePayment executes the settlement. The movement carries the signed
	// amount, kind, description, related transaction and acting user; its
	// balance bounds are computed under the lock and returned in the outcome.
	// Fails with apperrors.ErrInsufficientFunds (balance re-checked under
	// lock), apperrors.ErrInvalidState (payment no longer pending) or a
	// wrapped persistence error; on any failure nothing is written.
	SettlePayment(ctx context.Context, payment domain.PendingPayment, boxID string, movement domain.BoxMovement, now time.Time, userID string) (*SettleOutcome, error)
}

// PendingPaymentRepositoryFacade combines all pending-payment repository interfaces.
type PendingPaymentRepositoryFacade interface {
	PendingPaymentReader
	PendingPaymentWriter
	PendingPaymentSettler
}
