package dto

import (
	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBoxRequest carries the fields for creating an operating box.
type CreateBoxRequest struct {
	BusinessID  *string `json:"businessID" binding:"omitempty,uuid"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
}

// AdjustBoxRequest carries a signed manual adjustment to a box balance.
type AdjustBoxRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
}

// RecordMovementParams is the recorder contract: one history entry per call.
// When BalanceBefore and BalanceAfter are both nil they default to the box's
// current stored balance (a no-op/adjustment entry documenting an out-of-band
// change). When only BalanceBefore is supplied, BalanceAfter is computed as
// BalanceBefore + Amount.
type RecordMovementParams struct {
	BoxID         string
	Amount        decimal.Decimal
	Kind          domain.BoxMovementKind
	Description   string
	TransactionID *string
	BalanceBefore *decimal.Decimal
	BalanceAfter  *decimal.Decimal
	ActingUserID  string
}

// BoxMovementResponse is the movement representation returned by the API.
type BoxMovementResponse struct {
	MovementID    string          `json:"movementID"`
	BoxID         string          `json:"boxID"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Kind          string          `json:"kind"`
	Description   string          `json:"description"`
	TransactionID *string         `json:"transactionID,omitempty"`
}

// ToBoxMovementResponse converts a domain.BoxMovement to its API representation.
func ToBoxMovementResponse(m *domain.BoxMovement) BoxMovementResponse {
	return BoxMovementResponse{
		MovementID:    m.MovementID,
		BoxID:         m.BoxID,
		Amount:        m.Amount,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		Kind:          string(m.Kind),
		Description:   m.Description,
		TransactionID: m.TransactionID,
	}
}

// BoxBalanceCheck reports whether a box's stored balance matches the sum of
// its recorded movement amounts.
type BoxBalanceCheck struct {
	BoxID         string          `json:"boxID"`
	StoredBalance decimal.Decimal `json:"storedBalance"`
	MovementSum   decimal.Decimal `json:"movementSum"`
	Consistent    bool            `json:"consistent"`
}

// ListMovementsResponse wraps a page of movements with the next-page token.
type ListMovementsResponse struct {
	Movements []BoxMovementResponse `json:"movements"`
	NextToken *string               `json:"nextToken,omitempty"`
}
