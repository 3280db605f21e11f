package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/flotaops/fleet-finance-backend/internal/apperrors"
	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	portsrepo "github.com/flotaops/fleet-finance-backend/internal/core/ports/repositories"
	"github.com/flotaops/fleet-finance-backend/internal/models"
	"github.com/flotaops/fleet-finance-backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxOperatingBoxRepository struct {
	BaseRepository
}

// newPgxOperatingBoxRepository creates a new repository for operating box and
// movement data.
func newPgxOperatingBoxRepository(pool *pgxpool.Pool) portsrepo.OperatingBoxRepositoryWithTx {
	return &PgxOperatingBoxRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OperatingBoxRepositoryWithTx = (*PgxOperatingBoxRepository)(nil)

func toModelBox(d domain.OperatingBox) models.OperatingBox {
	return models.OperatingBox{
		BoxID:       d.BoxID,
		BusinessID:  d.BusinessID,
		Name:        d.Name,
		Balance:     d.Balance,
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainBox(m models.OperatingBox) domain.OperatingBox {
	return domain.OperatingBox{
		BoxID:       m.BoxID,
		BusinessID:  m.BusinessID,
		Name:        m.Name,
		Balance:     m.Balance,
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainMovement(m models.BoxMovement) domain.BoxMovement {
	return domain.BoxMovement{
		MovementID:    m.MovementID,
		BoxID:         m.BoxID,
		Amount:        m.Amount,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		Kind:          domain.BoxMovementKind(m.Kind),
		Description:   m.Description,
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		CreatedAt:     m.CreatedAt,
	}
}

const boxColumns = `box_id, business_id, name, balance, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanBox(row pgx.Row) (*domain.OperatingBox, error) {
	var m models.OperatingBox
	err := row.Scan(
		&m.BoxID,
		&m.BusinessID,
		&m.Name,
		&m.Balance,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	box := toDomainBox(m)
	return &box, nil
}

// SaveBox inserts a new operating box.
func (r *PgxOperatingBoxRepository) SaveBox(ctx context.Context, box domain.OperatingBox) error {
	m := toModelBox(box)
	query := `
		INSERT INTO operating_boxes (box_id, business_id, name, balance, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BoxID,
		m.BusinessID,
		m.Name,
		m.Balance,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save operating box %s: %w", m.BoxID, err)
	}
	return nil
}

// FindBoxByID retrieves a box by its ID.
func (r *PgxOperatingBoxRepository) FindBoxByID(ctx context.Context, boxID string) (*domain.OperatingBox, error) {
	query := `SELECT ` + boxColumns + ` FROM operating_boxes WHERE box_id = $1;`
	box, err := scanBox(r.Pool.QueryRow(ctx, query, boxID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find operating box by ID %s: %w", boxID, err)
	}
	return box, nil
}

// FindActiveBoxByBusinessID retrieves the active box owned by a business,
// oldest first when more than one exists.
func (r *PgxOperatingBoxRepository) FindActiveBoxByBusinessID(ctx context.Context, businessID string) (*domain.OperatingBox, error) {
	query := `
		SELECT ` + boxColumns + `
		FROM operating_boxes
		WHERE business_id = $1 AND is_active
		ORDER BY created_at
		LIMIT 1;
	`
	box, err := scanBox(r.Pool.QueryRow(ctx, query, businessID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find active box for business %s: %w", businessID, err)
	}
	return box, nil
}

// FindAnyActiveBox retrieves any active box system-wide, oldest first.
func (r *PgxOperatingBoxRepository) FindAnyActiveBox(ctx context.Context) (*domain.OperatingBox, error) {
	query := `
		SELECT ` + boxColumns + `
		FROM operating_boxes
		WHERE is_active
		ORDER BY created_at
		LIMIT 1;
	`
	box, err := scanBox(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find any active box: %w", err)
	}
	return box, nil
}

// ListBoxes retrieves a paginated list of boxes.
func (r *PgxOperatingBoxRepository) ListBoxes(ctx context.Context, limit, offset int) ([]domain.OperatingBox, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + boxColumns + `
		FROM operating_boxes
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list operating boxes: %w", err)
	}
	defer rows.Close()

	boxes := []domain.OperatingBox{}
	for rows.Next() {
		var m models.OperatingBox
		if err := rows.Scan(
			&m.BoxID,
			&m.BusinessID,
			&m.Name,
			&m.Balance,
			&m.Description,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan operating box row: %w", err)
		}
		boxes = append(boxes, toDomainBox(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating operating box rows: %w", err)
	}
	return boxes, nil
}

// DeactivateBox marks a box as inactive.
func (r *PgxOperatingBoxRepository) DeactivateBox(ctx context.Context, boxID string, userID string, now time.Time) error {
	query := `
		UPDATE operating_boxes
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE box_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, boxID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate operating box %s: %w", boxID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("operating box " + boxID + " not found for deactivation")
	}
	return nil
}

const movementInsertQuery = `
	INSERT INTO operating_box_movements (movement_id, box_id, amount, balance_before, balance_after, kind, description, transaction_id, user_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

// SaveMovement inserts exactly one movement row. The movements table is
// append-only; no update or delete statement exists for it anywhere.
func (r *PgxOperatingBoxRepository) SaveMovement(ctx context.Context, movement domain.BoxMovement) error {
	_, err := r.Pool.Exec(ctx, movementInsertQuery,
		movement.MovementID,
		movement.BoxID,
		movement.Amount,
		movement.BalanceBefore,
		movement.BalanceAfter,
		string(movement.Kind),
		movement.Description,
		movement.TransactionID,
		movement.UserID,
		movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save box movement %s: %w", movement.MovementID, err)
	}
	return nil
}

// SaveMovementInTx inserts a movement row within an existing transaction.
func (r *PgxOperatingBoxRepository) SaveMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.BoxMovement) error {
	_, err := tx.Exec(ctx, movementInsertQuery,
		movement.MovementID,
		movement.BoxID,
		movement.Amount,
		movement.BalanceBefore,
		movement.BalanceAfter,
		string(movement.Kind),
		movement.Description,
		movement.TransactionID,
		movement.UserID,
		movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save box movement %s in tx: %w", movement.MovementID, err)
	}
	return nil
}

// FindBoxByIDForUpdate selects a box and locks its row for the duration of
// the transaction, serializing concurrent settlements against the same box.
func (r *PgxOperatingBoxRepository) FindBoxByIDForUpdate(ctx context.Context, tx pgx.Tx, boxID string) (*domain.OperatingBox, error) {
	query := `SELECT ` + boxColumns + ` FROM operating_boxes WHERE box_id = $1 FOR UPDATE;`
	box, err := scanBox(tx.QueryRow(ctx, query, boxID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to lock operating box %s: %w", boxID, err)
	}
	return box, nil
}

// UpdateBoxBalanceInTx applies a signed delta to the box balance within a transaction.
func (r *PgxOperatingBoxRepository) UpdateBoxBalanceInTx(ctx context.Context, tx pgx.Tx, boxID string, delta decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE operating_boxes
		SET balance = COALESCE(balance, 0) + $2, last_updated_at = $3, last_updated_by = $4
		WHERE box_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, boxID, delta, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update balance for box %s: %w", boxID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: operating box %s not found during balance update", apperrors.ErrNotFound, boxID)
	}
	return nil
}

// SumMovementAmounts returns the sum of signed movement amounts for a box.
func (r *PgxOperatingBoxRepository) SumMovementAmounts(ctx context.Context, boxID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM operating_box_movements WHERE box_id = $1;`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, boxID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum movements for box %s: %w", boxID, err)
	}
	return sum, nil
}

// ListMovementsByBoxID retrieves a paginated list of movements for a box using
// token-based pagination, newest first. It returns the movements, a token for
// the next page, and an error.
func (r *PgxOperatingBoxRepository) ListMovementsByBoxID(ctx context.Context, boxID string, limit int, nextToken *string) ([]domain.BoxMovement, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether there is a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT movement_id, box_id, amount, balance_before, balance_after, kind, description, transaction_id, user_id, created_at
		FROM operating_box_movements
		WHERE box_id = $1
	`
	// Ordering must be stable; movement_id breaks created_at ties.
	orderByClause := `ORDER BY created_at DESC, movement_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{boxID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastMovementID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (created_at, movement_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastMovementID)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, fmt.Errorf("failed to query movements for box %s: %w", boxID, err)
	}
	defer rows.Close()

	modelMovements := make([]models.BoxMovement, 0, fetchLimit)
	for rows.Next() {
		var m models.BoxMovement
		if err := rows.Scan(
			&m.MovementID,
			&m.BoxID,
			&m.Amount,
			&m.BalanceBefore,
			&m.BalanceAfter,
			&m.Kind,
			&m.Description,
			&m.TransactionID,
			&m.UserID,
			&m.CreatedAt,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan movement row for box %s: %w", boxID, err)
		}
		modelMovements = append(modelMovements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating movement rows for box %s: %w", boxID, err)
	}

	var nextTokenVal *string
	results := modelMovements
	if len(modelMovements) > limit {
		last := modelMovements[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.MovementID)
		nextTokenVal = &token
		results = modelMovements[:limit]
	}

	movements := make([]domain.BoxMovement, len(results))
	for i, m := range results {
		movements[i] = toDomainMovement(m)
	}
	return movements, nextTokenVal, nil
}
