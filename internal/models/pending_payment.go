package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PendingPayment represents a row in the pending_payments table.
type PendingPayment struct {
	PaymentID     string          `db:"payment_id"`
	BusinessID    *string         `db:"business_id"`
	DriverID      *string         `db:"driver_id"`
	TransactionID *string         `db:"transaction_id"`
	Amount        decimal.Decimal `db:"amount"`
	Description   string          `db:"description"`
	Status        string          `db:"status"`
	PaidAt        *time.Time      `db:"paid_at"`
	AuditFields
}
