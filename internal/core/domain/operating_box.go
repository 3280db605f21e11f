package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BoxMovementKind tags the direction of a box movement. The signed amount is
// authoritative for balance math; the kind exists for clarity and filtering.
type BoxMovementKind string

const (
	MovementIncome     BoxMovementKind = "INCOME"
	MovementExpense    BoxMovementKind = "EXPENSE"
	MovementAdjustment BoxMovementKind = "ADJUSTMENT"
)

// OperatingBox is a named cash balance belonging to a business, debited and
// credited through recorded movements.
//
// Invariant: Balance equals the sum of the signed amounts of all movements
// recorded against the box.
type OperatingBox struct {
	BoxID       string          `json:"boxID"`      // Primary Key (UUID)
	BusinessID  *string         `json:"businessID"` // Nullable FK -> businesses.business_id
	Name        string          `json:"name"`
	Balance     decimal.Decimal `json:"balance"`
	Description string          `json:"description"`
	IsActive    bool            `json:"isActive"`
	AuditFields
}

// BoxMovement is an immutable audit row capturing one balance change and its
// before/after state. Rows are only ever inserted, never updated or deleted.
//
// Invariant: BalanceAfter = BalanceBefore + Amount.
type BoxMovement struct {
	MovementID    string          `json:"movementID"` // Primary Key (UUID)
	BoxID         string          `json:"boxID"`      // FK -> operating_boxes.box_id
	Amount        decimal.Decimal `json:"amount"`     // Signed: positive INCOME, negative EXPENSE
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Kind          BoxMovementKind `json:"kind"`
	Description   string          `json:"description"`
	TransactionID *string         `json:"transactionID"` // Nullable FK -> transactions.transaction_id
	UserID        string          `json:"userID"`        // Acting user
	CreatedAt     time.Time       `json:"createdAt"`
}
