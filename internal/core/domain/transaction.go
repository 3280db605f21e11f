package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialTransaction represents a single money movement recorded against a
// business, categorized by payment method and category.
//
// ExcessAmount is the uncollected portion of the amount; when positive, a
// pending payment exists for it and a successful settlement zeroes it.
type FinancialTransaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (UUID)
	BusinessID      string          `json:"businessID"`    // FK -> businesses.business_id
	VehicleID       *string         `json:"vehicleID"`     // Nullable FK -> vehicles.vehicle_id
	DriverID        *string         `json:"driverID"`      // Nullable FK -> drivers.driver_id
	CategoryID      string          `json:"categoryID"`
	PaymentMethodID string          `json:"paymentMethodID"`
	StateID         string          `json:"stateID"`
	Amount          decimal.Decimal `json:"amount"`
	CollectedAmount decimal.Decimal `json:"collectedAmount"`
	ExcessAmount    decimal.Decimal `json:"excessAmount"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transactionDate"`
	AuditFields
}

// MovementsBox is the cash-movement line-item attached to a transaction. The
// settlement flow only touches its ExcessAmount field.
type MovementsBox struct {
	MovementBoxID string          `json:"movementBoxID"` // Primary Key (UUID)
	TransactionID string          `json:"transactionID"` // FK -> transactions.transaction_id
	Amount        decimal.Decimal `json:"amount"`
	ExcessAmount  decimal.Decimal `json:"excessAmount"`
	AuditFields
}
