package dto

import (
	"time"

	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePendingPaymentRequest carries the fields for opening a pending payment
// by hand, outside the transaction shortfall flow.
type CreatePendingPaymentRequest struct {
	BusinessID  *string         `json:"businessID" binding:"omitempty,uuid"`
	DriverID    *string         `json:"driverID" binding:"omitempty,uuid"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
}

// PendingPaymentResponse is the pending payment representation returned by the API.
type PendingPaymentResponse struct {
	PaymentID     string          `json:"paymentID"`
	BusinessID    *string         `json:"businessID,omitempty"`
	DriverID      *string         `json:"driverID,omitempty"`
	TransactionID *string         `json:"transactionID,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
}

// ToPendingPaymentResponse converts a domain.PendingPayment to its API representation.
func ToPendingPaymentResponse(p *domain.PendingPayment) PendingPaymentResponse {
	return PendingPaymentResponse{
		PaymentID:     p.PaymentID,
		BusinessID:    p.BusinessID,
		DriverID:      p.DriverID,
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		Description:   p.Description,
		Status:        string(p.Status),
		PaidAt:        p.PaidAt,
	}
}

// OperatingBoxSnapshot is the before/after balance view of the funding box
// embedded in a successful settlement response. Field names match the wire
// format the back office's frontend consumes.
type OperatingBoxSnapshot struct {
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	SaldoAnterior decimal.Decimal `json:"saldo_anterior"`
	SaldoActual   decimal.Decimal `json:"saldo_actual"`
}

// SettlePaymentData is the payload of a successful settlement.
type SettlePaymentData struct {
	PendingPayment PendingPaymentResponse `json:"pending_payment"`
	Transaction    interface{}            `json:"transaction"`
	OperatingBox   OperatingBoxSnapshot   `json:"operating_box"`
}

// StatusResponse is the envelope used by the settlement endpoints.
type StatusResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
}

// ToSettlementResponse builds the settle endpoint's response envelope from a
// settlement result.
func ToSettlementResponse(res *domain.SettlementResult) StatusResponse {
	var txn interface{}
	if res.Transaction != nil {
		txn = res.Transaction
	}
	return StatusResponse{
		Status: "success",
		Data: SettlePaymentData{
			PendingPayment: ToPendingPaymentResponse(&res.Payment),
			Transaction:    txn,
			OperatingBox: OperatingBoxSnapshot{
				ID:            res.Box.BoxID,
				Nombre:        res.Box.Name,
				SaldoAnterior: res.BalanceBefore,
				SaldoActual:   res.BalanceAfter,
			},
		},
	}
}
