package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialTransaction represents a row in the transactions table.
type FinancialTransaction struct {
	TransactionID   string          `db:"transaction_id"`
	BusinessID      string          `db:"business_id"`
	VehicleID       *string         `db:"vehicle_id"`
	DriverID        *string         `db:"driver_id"`
	CategoryID      string          `db:"category_id"`
	PaymentMethodID string          `db:"payment_method_id"`
	StateID         string          `db:"state_id"`
	Amount          decimal.Decimal `db:"amount"`
	CollectedAmount decimal.Decimal `db:"collected_amount"`
	ExcessAmount    decimal.Decimal `db:"excess_amount"`
	Description     string          `db:"description"`
	TransactionDate time.Time       `db:"transaction_date"`
	AuditFields
}

// MovementsBox represents a row in the movements_boxes table.
type MovementsBox struct {
	MovementBoxID string          `db:"movement_box_id"`
	TransactionID string          `db:"transaction_id"`
	Amount        decimal.Decimal `db:"amount"`
	ExcessAmount  decimal.Decimal `db:"excess_amount"`
	AuditFields
}
