package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investor represents a row in the investors table.
type Investor struct {
	InvestorID string `db:"investor_id"`
	Name       string `db:"name"`
	Email      string `db:"email"`
	Phone      string `db:"phone"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}

// Investment represents a row in the investments table.
type Investment struct {
	InvestmentID string          `db:"investment_id"`
	InvestorID   string          `db:"investor_id"`
	BusinessID   string          `db:"business_id"`
	VehicleID    *string         `db:"vehicle_id"`
	Amount       decimal.Decimal `db:"amount"`
	InvestedAt   time.Time       `db:"invested_at"`
	Notes        string          `db:"notes"`
	AuditFields
}
