package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/flotaops/fleet-finance-backend/internal/apperrors"
	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	portsrepo "github.com/flotaops/fleet-finance-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// The three lookup tables share a shape: id, name, description, is_active plus
// audit columns. Each repository stays a separate type so the service layer
// depends on the narrow interface it needs.

type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepository {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepository = (*PgxCategoryRepository)(nil)

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `
		INSERT INTO categories (category_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		category.CategoryID,
		category.Name,
		category.Description,
		category.IsActive,
		category.CreatedAt,
		category.CreatedBy,
		category.LastUpdatedAt,
		category.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: category %s already exists", apperrors.ErrDuplicate, category.Name)
		}
		return fmt.Errorf("failed to save category %s: %w", category.CategoryID, err)
	}
	return nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT category_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by FROM categories WHERE category_id = $1;`
	var c domain.Category
	err := r.Pool.QueryRow(ctx, query, categoryID).Scan(
		&c.CategoryID,
		&c.Name,
		&c.Description,
		&c.IsActive,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}
	return &c, nil
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT category_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by FROM categories ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(
			&c.CategoryID,
			&c.Name,
			&c.Description,
			&c.IsActive,
			&c.CreatedAt,
			&c.CreatedBy,
			&c.LastUpdatedAt,
			&c.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}

type PgxPaymentMethodRepository struct {
	BaseRepository
}

func newPgxPaymentMethodRepository(pool *pgxpool.Pool) portsrepo.PaymentMethodRepository {
	return &PgxPaymentMethodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentMethodRepository = (*PgxPaymentMethodRepository)(nil)

func (r *PgxPaymentMethodRepository) SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) error {
	query := `
		INSERT INTO payment_methods (payment_method_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		method.PaymentMethodID,
		method.Name,
		method.Description,
		method.IsActive,
		method.CreatedAt,
		method.CreatedBy,
		method.LastUpdatedAt,
		method.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: payment method %s already exists", apperrors.ErrDuplicate, method.Name)
		}
		return fmt.Errorf("failed to save payment method %s: %w", method.PaymentMethodID, err)
	}
	return nil
}

func (r *PgxPaymentMethodRepository) FindPaymentMethodByID(ctx context.Context, methodID string) (*domain.PaymentMethod, error) {
	query := `SELECT payment_method_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by FROM payment_methods WHERE payment_method_id = $1;`
	var pm domain.PaymentMethod
	err := r.Pool.QueryRow(ctx, query, methodID).Scan(
		&pm.PaymentMethodID,
		&pm.Name,
		&pm.Description,
		&pm.IsActive,
		&pm.CreatedAt,
		&pm.CreatedBy,
		&pm.LastUpdatedAt,
		&pm.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment method by ID %s: %w", methodID, err)
	}
	return &pm, nil
}

func (r *PgxPaymentMethodRepository) ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	query := `SELECT payment_method_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by FROM payment_methods ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	defer rows.Close()

	methods := []domain.PaymentMethod{}
	for rows.Next() {
		var pm domain.PaymentMethod
		if err := rows.Scan(
			&pm.PaymentMethodID,
			&pm.Name,
			&pm.Description,
			&pm.IsActive,
			&pm.CreatedAt,
			&pm.CreatedBy,
			&pm.LastUpdatedAt,
			&pm.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment method row: %w", err)
		}
		methods = append(methods, pm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment method rows: %w", err)
	}
	return methods, nil
}

type PgxTransactionStateRepository struct {
	BaseRepository
}

func newPgxTransactionStateRepository(pool *pgxpool.Pool) portsrepo.TransactionStateRepository {
	return &PgxTransactionStateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionStateRepository = (*PgxTransactionStateRepository)(nil)

func (r *PgxTransactionStateRepository) SaveTransactionState(ctx context.Context, state domain.TransactionState) error {
	query := `
		INSERT INTO transaction_states (state_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		state.StateID,
		state.Name,
		state.Description,
		state.IsActive,
		state.CreatedAt,
		state.CreatedBy,
		state.LastUpdatedAt,
		state.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction state %s already exists", apperrors.ErrDuplicate, state.Name)
		}
		return fmt.Errorf("failed to save transaction state %s: %w", state.StateID, err)
	}
	return nil
}

func (r *PgxTransactionStateRepository) FindTransactionStateByID(ctx context.Context, stateID string) (*domain.TransactionState, error) {
	query := `SELECT state_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by FROM transaction_states WHERE state_id = $1;`
	var s domain.TransactionState
	err := r.Pool.QueryRow(ctx, query, stateID).Scan(
		&s.StateID,
		&s.Name,
		&s.Description,
		&s.IsActive,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction state by ID %s: %w", stateID, err)
	}
	return &s, nil
}

func (r *PgxTransactionStateRepository) ListTransactionStates(ctx context.Context) ([]domain.TransactionState, error) {
	query := `SELECT state_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by FROM transaction_states ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction states: %w", err)
	}
	defer rows.Close()

	states := []domain.TransactionState{}
	for rows.Next() {
		var s domain.TransactionState
		if err := rows.Scan(
			&s.StateID,
			&s.Name,
			&s.Description,
			&s.IsActive,
			&s.CreatedAt,
			&s.CreatedBy,
			&s.LastUpdatedAt,
			&s.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction state row: %w", err)
		}
		states = append(states, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction state rows: %w", err)
	}
	return states, nil
}
