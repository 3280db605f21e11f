package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/flotaops/fleet-finance-backend/internal/apperrors"
	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	portsrepo "github.com/flotaops/fleet-finance-backend/internal/core/ports/repositories"
	"github.com/flotaops/fleet-finance-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func toDomainTransaction(m models.FinancialTransaction) domain.FinancialTransaction {
	return domain.FinancialTransaction{
		TransactionID:   m.TransactionID,
		BusinessID:      m.BusinessID,
		VehicleID:       m.VehicleID,
		DriverID:        m.DriverID,
		CategoryID:      m.CategoryID,
		PaymentMethodID: m.PaymentMethodID,
		StateID:         m.StateID,
		Amount:          m.Amount,
		CollectedAmount: m.CollectedAmount,
		ExcessAmount:    m.ExcessAmount,
		Description:     m.Description,
		TransactionDate: m.TransactionDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const transactionColumns = `transaction_id, business_id, vehicle_id, driver_id, category_id, payment_method_id, state_id, amount, collected_amount, excess_amount, description, transaction_date, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (*domain.FinancialTransaction, error) {
	var m models.FinancialTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.BusinessID,
		&m.VehicleID,
		&m.DriverID,
		&m.CategoryID,
		&m.PaymentMethodID,
		&m.StateID,
		&m.Amount,
		&m.CollectedAmount,
		&m.ExcessAmount,
		&m.Description,
		&m.TransactionDate,
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
	txn := toDomainTransaction(m)
	return &txn, nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.FinancialTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return txn, nil
}

// FindMovementsBoxByTransactionID retrieves the cash-movement line-item for a transaction.
func (r *PgxTransactionRepository) FindMovementsBoxByTransactionID(ctx context.Context, transactionID string) (*domain.MovementsBox, error) {
	query := `
		SELECT movement_box_id, transaction_id, amount, excess_amount, created_at, created_by, last_updated_at, last_updated_by
		FROM movements_boxes
		WHERE transaction_id = $1;
	`
	var m models.MovementsBox
	err := r.Pool.QueryRow(ctx, query, transactionID).Scan(
		&m.MovementBoxID,
		&m.TransactionID,
		&m.Amount,
		&m.ExcessAmount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cash movement for transaction %s: %w", transactionID, err)
	}
	return &domain.MovementsBox{
		MovementBoxID: m.MovementBoxID,
		TransactionID: m.TransactionID,
		Amount:        m.Amount,
		ExcessAmount:  m.ExcessAmount,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

// ListTransactions retrieves a paginated list of transactions for a business, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, businessID string, limit, offset int) ([]domain.FinancialTransaction, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE business_id = $1
		ORDER BY transaction_date DESC, transaction_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, businessID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for business %s: %w", businessID, err)
	}
	defer rows.Close()

	transactions := []domain.FinancialTransaction{}
	for rows.Next() {
		var m models.FinancialTransaction
		if err := rows.Scan(
			&m.TransactionID,
			&m.BusinessID,
			&m.VehicleID,
			&m.DriverID,
			&m.CategoryID,
			&m.PaymentMethodID,
			&m.StateID,
			&m.Amount,
			&m.CollectedAmount,
			&m.ExcessAmount,
			&m.Description,
			&m.TransactionDate,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, toDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return transactions, nil
}

// SaveTransaction persists a transaction with its cash-movement line-item and
// optional pending payment in one database transaction. A shortfall must never
// produce a transaction row without its matching pending payment.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.FinancialTransaction, movementsBox *domain.MovementsBox, pending *domain.PendingPayment) (err error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction for transaction save", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = fmt.Errorf("transaction save rollback failed: %v (original error: %w)", rbErr, err)
			}
		}
	}()

	txnQuery := `
		INSERT INTO transactions (transaction_id, business_id, vehicle_id, driver_id, category_id, payment_method_id, state_id, amount, collected_amount, excess_amount, description, transaction_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, txnQuery,
		txn.TransactionID,
		txn.BusinessID,
		txn.VehicleID,
		txn.DriverID,
		txn.CategoryID,
		txn.PaymentMethodID,
		txn.StateID,
		txn.Amount,
		txn.CollectedAmount,
		txn.ExcessAmount,
		txn.Description,
		txn.TransactionDate,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}

	if movementsBox != nil {
		movQuery := `
			INSERT INTO movements_boxes (movement_box_id, transaction_id, amount, excess_amount, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`
		_, err = tx.Exec(ctx, movQuery,
			movementsBox.MovementBoxID,
			movementsBox.TransactionID,
			movementsBox.Amount,
			movementsBox.ExcessAmount,
			movementsBox.CreatedAt,
			movementsBox.CreatedBy,
			movementsBox.LastUpdatedAt,
			movementsBox.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert cash movement for transaction %s: %w", txn.TransactionID, err)
		}
	}

	if pending != nil {
		p := toModelPayment(*pending)
		pendingQuery := `
			INSERT INTO pending_payments (payment_id, business_id, driver_id, transaction_id, amount, description, status, paid_at, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
		`
		_, err = tx.Exec(ctx, pendingQuery,
			p.PaymentID,
			p.BusinessID,
			p.DriverID,
			p.TransactionID,
			p.Amount,
			p.Description,
			p.Status,
			p.PaidAt,
			p.CreatedAt,
			p.CreatedBy,
			p.LastUpdatedAt,
			p.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert pending payment for transaction %s: %w", txn.TransactionID, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction save", err)
	}
	return nil
}
