package repositories

import (
	"context"
	"time"

	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// OperatingBoxReader defines read operations for operating box data.
type OperatingBoxReader interface {
	// FindBoxByID retrieves a specific box by its unique identifier.
	FindBoxByID(ctx context.Context, boxID string) (*domain.OperatingBox, error)

	// FindActiveBoxByBusinessID retrieves the active box owned by a business.
	// Returns apperrors.ErrNotFound when the business has no active box.
	FindActiveBoxByBusinessID(ctx context.Context, businessID string) (*domain.OperatingBox, error)

	// FindAnyActiveBox retrieves any active box system-wide, oldest first.
	// Returns apperrors.ErrNotFound when no active box exists at all.
	FindAnyActiveBox(ctx context.Context) (*domain.OperatingBox, error)

	// ListBoxes retrieves a paginated list of boxes.
	ListBoxes(ctx context.Context, limit, offset int) ([]domain.OperatingBox, error)
}

// OperatingBoxWriter defines write operations for operating box data.
type OperatingBoxWriter interface {
	// SaveBox persists a new operating box.
	SaveBox(ctx context.Context, box domain.OperatingBox) error

	// DeactivateBox marks a box as inactive.
	DeactivateBox(ctx context.Context, boxID string, userID string, now time.Time) error
}

// BoxMovementRecorder defines the append-only movement ledger operations.
type BoxMovementRecorder interface {
	// SaveMovement inserts exactly one movement row. It never mutates the box
	// balance; that is the caller's responsibility.
	SaveMovement(ctx context.Context, movement domain.BoxMovement) error

	// ListMovementsByBoxID retrieves movements for a box using token-based
	// pagination, newest first.
	ListMovementsByBoxID(ctx context.Context, boxID string, limit int, nextToken *string) ([]domain.BoxMovement, *string, error)

	// SumMovementAmounts returns the sum of signed movement amounts for a box.
	// Used by reconciliation checks against the stored balance.
	SumMovementAmounts(ctx context.Context, boxID string) (decimal.Decimal, error)
}

// OperatingBoxTransactionSupport defines operations used inside settlement and
// adjustment transactions.
type OperatingBoxTransactionSupport interface {
	// FindBoxByIDForUpdate selects a box and locks its row for the duration of
	// the transaction. Must be called within a transaction.
	FindBoxByIDForUpdate(ctx context.Context, tx pgx.Tx, boxID string) (*domain.OperatingBox, error)

	// UpdateBoxBalanceInTx applies a signed delta to the box balance within a
	// transaction.
	UpdateBoxBalanceInTx(ctx context.Context, tx pgx.Tx, boxID string, delta decimal.Decimal, userID string, now time.Time) error

	// SaveMovementInTx inserts a movement row within a transaction.
	SaveMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.BoxMovement) error
}

// OperatingBoxRepositoryFacade combines all operating-box repository interfaces.
type OperatingBoxRepositoryFacade interface {
	OperatingBoxReader
	OperatingBoxWriter
	BoxMovementRecorder
	OperatingBoxTransactionSupport
}

// OperatingBoxRepositoryWithTx extends the facade with transaction management.
type OperatingBoxRepositoryWithTx interface {
	OperatingBoxRepositoryFacade
	TransactionManager
}
