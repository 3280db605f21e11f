package services

import (
	"fmt"

	"github.com/flotaops/fleet-finance-backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// checkAmountScale rejects monetary amounts with more than two fractional
// digits. Amounts are persisted into NUMERIC(14,2) columns and must arrive
// already at that scale.
func checkAmountScale(amount decimal.Decimal, field string) error {
	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: %s cannot have more than two decimal places", apperrors.ErrValidation, field)
	}
	return nil
}
