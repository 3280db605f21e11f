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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPendingPaymentRepository persists pending payments. Settlement needs to
// touch the funding box atomically, so the repository collaborates with the
// box repository's transaction support inside a single pgx transaction.
type PgxPendingPaymentRepository struct {
	BaseRepository
	boxRepo portsrepo.OperatingBoxTransactionSupport
}

func newPgxPendingPaymentRepository(pool *pgxpool.Pool, boxRepo portsrepo.OperatingBoxTransactionSupport) portsrepo.PendingPaymentRepositoryFacade {
	return &PgxPendingPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
		boxRepo:        boxRepo,
	}
}

var _ portsrepo.PendingPaymentRepositoryFacade = (*PgxPendingPaymentRepository)(nil)

func toModelPayment(d domain.PendingPayment) models.PendingPayment {
	return models.PendingPayment{
		PaymentID:     d.PaymentID,
		BusinessID:    d.BusinessID,
		DriverID:      d.DriverID,
		TransactionID: d.TransactionID,
		Amount:        d.Amount,
		Description:   d.Description,
		Status:        string(d.Status),
		PaidAt:        d.PaidAt,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainPayment(m models.PendingPayment) domain.PendingPayment {
	return domain.PendingPayment{
		PaymentID:     m.PaymentID,
		BusinessID:    m.BusinessID,
		DriverID:      m.DriverID,
		TransactionID: m.TransactionID,
		Amount:        m.Amount,
		Description:   m.Description,
		Status:        domain.PendingPaymentStatus(m.Status),
		PaidAt:        m.PaidAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const paymentColumns = `payment_id, business_id, driver_id, transaction_id, amount, description, status, paid_at, created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (*domain.PendingPayment, error) {
	var m models.PendingPayment
	err := row.Scan(
		&m.PaymentID,
		&m.BusinessID,
		&m.DriverID,
		&m.TransactionID,
		&m.Amount,
		&m.Description,
		&m.Status,
		&m.PaidAt,
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
	payment := toDomainPayment(m)
	return &payment, nil
}

// SavePayment inserts a new pending payment.
func (r *PgxPendingPaymentRepository) SavePayment(ctx context.Context, payment domain.PendingPayment) error {
	m := toModelPayment(payment)
	query := `
		INSERT INTO pending_payments (payment_id, business_id, driver_id, transaction_id, amount, description, status, paid_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PaymentID,
		m.BusinessID,
		m.DriverID,
		m.TransactionID,
		m.Amount,
		m.Description,
		m.Status,
		m.PaidAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save pending payment %s: %w", m.PaymentID, err)
	}
	return nil
}

// FindPaymentByID retrieves a pending payment by its ID.
func (r *PgxPendingPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.PendingPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM pending_payments WHERE payment_id = $1;`
	payment, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find pending payment by ID %s: %w", paymentID, err)
	}
	return payment, nil
}

// ListPayments retrieves pending payments matching the filter, newest first.
func (r *PgxPendingPaymentRepository) ListPayments(ctx context.Context, filter portsrepo.PendingPaymentFilter) ([]domain.PendingPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM pending_payments WHERE 1=1`
	args := []interface{}{}

	addArg := func(clause string, value interface{}) {
		args = append(args, value)
		query += " AND " + clause + " $" + strconv.Itoa(len(args))
	}

	if filter.BusinessID != nil {
		addArg("business_id =", *filter.BusinessID)
	}
	if filter.DriverID != nil {
		addArg("driver_id =", *filter.DriverID)
	}
	if filter.Status != nil {
		addArg("status =", string(*filter.Status))
	}
	if filter.From != nil {
		addArg("created_at >=", *filter.From)
	}
	if filter.To != nil {
		addArg("created_at <=", *filter.To)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit)
	query += " ORDER BY created_at DESC, payment_id DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	query += " OFFSET $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending payments: %w", err)
	}
	defer rows.Close()

	payments := []domain.PendingPayment{}
	for rows.Next() {
		var m models.PendingPayment
		if err := rows.Scan(
			&m.PaymentID,
			&m.BusinessID,
			&m.DriverID,
			&m.TransactionID,
			&m.Amount,
			&m.Description,
			&m.Status,
			&m.PaidAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pending payment row: %w", err)
		}
		payments = append(payments, toDomainPayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending payment rows: %w", err)
	}
	return payments, nil
}

// MarkCancelled flips a pending payment to CANCELLED. The status guard in the
// WHERE clause makes the flip at-most-once; a payment that already left
// PENDING is reported as an invalid state, not silently re-cancelled.
func (r *PgxPendingPaymentRepository) MarkCancelled(ctx context.Context, paymentID string, userID string, now time.Time) error {
	query := `
		UPDATE pending_payments
		SET status = 'CANCELLED', last_updated_at = $2, last_updated_by = $3
		WHERE payment_id = $1 AND status = 'PENDING';
	`
	cmdTag, err := r.Pool.Exec(ctx, query, paymentID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to cancel pending payment %s: %w", paymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Distinguish missing from already settled or cancelled.
		if _, findErr := r.FindPaymentByID(ctx, paymentID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: pending payment %s is no longer pending", apperrors.ErrInvalidState, paymentID)
	}
	return nil
}

// SettlePayment executes the whole settlement inside one database transaction:
// lock the box row, re-check funds against the authoritative balance, debit,
// zero the linked transaction's and cash movement's excess amounts, append the
// audit movement and flip the payment to PAID.
func (r *PgxPendingPaymentRepository) SettlePayment(ctx context.Context, payment domain.PendingPayment, boxID string, movement domain.BoxMovement, now time.Time, userID string) (outcome *portsrepo.SettleOutcome, err error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to begin settlement transaction", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = fmt.Errorf("settlement rollback failed: %v (original error: %w)", rbErr, err)
			}
		}
	}()

	box, err := r.boxRepo.FindBoxByIDForUpdate(ctx, tx, boxID)
	if err != nil {
		return nil, err
	}

	// Funds re-check under the row lock. The pre-check outside the transaction
	// is advisory only; this one is the one that counts.
	if box.Balance.LessThan(payment.Amount) {
		return nil, fmt.Errorf("%w: box %s holds %s, settlement requires %s",
			apperrors.ErrInsufficientFunds, boxID, box.Balance.String(), payment.Amount.String())
	}

	balanceBefore := box.Balance
	balanceAfter := balanceBefore.Sub(payment.Amount)

	if err = r.boxRepo.UpdateBoxBalanceInTx(ctx, tx, boxID, payment.Amount.Neg(), userID, now); err != nil {
		err = apperrors.NewPersistenceError("failed to debit operating box "+boxID, err)
		return nil, err
	}

	if payment.TransactionID != nil {
		zeroTxnQuery := `
			UPDATE transactions
			SET excess_amount = 0, last_updated_at = $2, last_updated_by = $3
			WHERE transaction_id = $1;
		`
		if _, err = tx.Exec(ctx, zeroTxnQuery, *payment.TransactionID, now, userID); err != nil {
			err = apperrors.NewPersistenceError("failed to zero excess on transaction "+*payment.TransactionID, err)
			return nil, err
		}

		zeroMovBoxQuery := `
			UPDATE movements_boxes
			SET excess_amount = 0, last_updated_at = $2, last_updated_by = $3
			WHERE transaction_id = $1;
		`
		if _, err = tx.Exec(ctx, zeroMovBoxQuery, *payment.TransactionID, now, userID); err != nil {
			err = apperrors.NewPersistenceError("failed to zero excess on cash movement for transaction "+*payment.TransactionID, err)
			return nil, err
		}
	}

	movement.BalanceBefore = balanceBefore
	movement.BalanceAfter = balanceAfter
	if err = r.boxRepo.SaveMovementInTx(ctx, tx, movement); err != nil {
		err = apperrors.NewPersistenceError("failed to record settlement movement", err)
		return nil, err
	}

	// The status guard makes the settlement idempotent-by-failure: a second
	// settlement attempt that raced past the earlier reads dies here.
	flipQuery := `
		UPDATE pending_payments
		SET status = 'PAID', paid_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE payment_id = $1 AND status = 'PENDING';
	`
	cmdTag, err := tx.Exec(ctx, flipQuery, payment.PaymentID, now, userID)
	if err != nil {
		err = apperrors.NewPersistenceError("failed to mark payment "+payment.PaymentID+" paid", err)
		return nil, err
	}
	if cmdTag.RowsAffected() == 0 {
		err = fmt.Errorf("%w: pending payment %s is no longer pending", apperrors.ErrInvalidState, payment.PaymentID)
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, apperrors.NewPersistenceError("failed to commit settlement transaction", err)
	}

	return &portsrepo.SettleOutcome{
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
	}, nil
}
