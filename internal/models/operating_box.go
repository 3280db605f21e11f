package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperatingBox represents a row in the operating_boxes table.
type OperatingBox struct {
	BoxID       string          `db:"box_id"`
	BusinessID  *string         `db:"business_id"`
	Name        string          `db:"name"`
	Balance     decimal.Decimal `db:"balance"`
	Description string          `db:"description"`
	IsActive    bool            `db:"is_active"`
	AuditFields
}

// BoxMovement represents a row in the operating_box_movements table.
// The table is append-only; no update or delete statements exist for it.
type BoxMovement struct {
	MovementID    string          `db:"movement_id"`
	BoxID         string          `db:"box_id"`
	Amount        decimal.Decimal `db:"amount"`
	BalanceBefore decimal.Decimal `db:"balance_before"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	Kind          string          `db:"kind"`
	Description   string          `db:"description"`
	TransactionID *string         `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	CreatedAt     time.Time       `db:"created_at"`
}
