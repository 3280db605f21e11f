package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest carries the fields for recording a financial
// transaction. CollectedAmount defaults to Amount when omitted; a shortfall
// opens a pending payment.
type CreateTransactionRequest struct {
	BusinessID      string           `json:"businessID" binding:"required,uuid"`
	VehicleID       *string          `json:"vehicleID" binding:"omitempty,uuid"`
	DriverID        *string          `json:"driverID" binding:"omitempty,uuid"`
	CategoryID      string           `json:"categoryID" binding:"required,uuid"`
	PaymentMethodID string           `json:"paymentMethodID" binding:"required,uuid"`
	StateID         string           `json:"stateID" binding:"required,uuid"`
	Amount          decimal.Decimal  `json:"amount" binding:"required"`
	CollectedAmount *decimal.Decimal `json:"collectedAmount"`
	Description     string           `json:"description"`
	TransactionDate *time.Time       `json:"transactionDate"`
}
