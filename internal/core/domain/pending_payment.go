package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PendingPaymentStatus is the state of a pending payment.
// PENDING is initial; PAID and CANCELLED are terminal.
type PendingPaymentStatus string

const (
	PaymentPending   PendingPaymentStatus = "PENDING"
	PaymentPaid      PendingPaymentStatus = "PAID"
	PaymentCancelled PendingPaymentStatus = "CANCELLED"
)

// PendingPayment is money owed from an operating box, created when a
// transaction's recorded amount exceeded what was collected.
type PendingPayment struct {
	PaymentID     string               `json:"paymentID"`  // Primary Key (UUID)
	BusinessID    *string              `json:"businessID"` // Nullable FK -> businesses.business_id
	DriverID      *string              `json:"driverID"`   // Nullable FK -> drivers.driver_id
	TransactionID *string              `json:"transactionID"`
	Amount        decimal.Decimal      `json:"amount"`
	Description   string               `json:"description"`
	Status        PendingPaymentStatus `json:"status"`
	PaidAt        *time.Time           `json:"paidAt"`
	AuditFields
}

// IsPending reports whether the payment can still be settled or cancelled.
func (p PendingPayment) IsPending() bool {
	return p.Status == PaymentPending
}

// SettlementResult is returned by a successful settlement: the updated payment,
// the linked transaction if one existed, and a before/after snapshot of the
// funding box.
type SettlementResult struct {
	Payment       PendingPayment
	Transaction   *FinancialTransaction
	Box           OperatingBox
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
}
