package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investor represents an external party funding vehicles or businesses.
type Investor struct {
	InvestorID string `json:"investorID"` // Primary Key (UUID)
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}

// Investment records money an investor put into a business, optionally earmarked
// for a specific vehicle.
type Investment struct {
	InvestmentID string          `json:"investmentID"` // Primary Key (UUID)
	InvestorID   string          `json:"investorID"`   // FK -> investors.investor_id
	BusinessID   string          `json:"businessID"`   // FK -> businesses.business_id
	VehicleID    *string         `json:"vehicleID"`    // Nullable FK -> vehicles.vehicle_id
	Amount       decimal.Decimal `json:"amount"`
	InvestedAt   time.Time       `json:"investedAt"`
	Notes        string          `json:"notes"`
	AuditFields
}
