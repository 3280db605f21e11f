package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvestorRequest carries the fields for creating an investor.
type CreateInvestorRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

// CreateInvestmentRequest carries the fields for recording an investment.
type CreateInvestmentRequest struct {
	InvestorID string          `json:"investorID" binding:"required,uuid"`
	BusinessID string          `json:"businessID" binding:"required,uuid"`
	VehicleID  *string         `json:"vehicleID" binding:"omitempty,uuid"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	InvestedAt *time.Time      `json:"investedAt"`
	Notes      string          `json:"notes"`
}
