package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flotaops/fleet-finance-backend/internal/apperrors"
	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	portsrepo "github.com/flotaops/fleet-finance-backend/internal/core/ports/repositories"
	"github.com/flotaops/fleet-finance-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvestorRepository struct {
	BaseRepository
}

func newPgxInvestorRepository(pool *pgxpool.Pool) portsrepo.InvestorRepository {
	return &PgxInvestorRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvestorRepository = (*PgxInvestorRepository)(nil)

func toDomainInvestor(m models.Investor) domain.Investor {
	return domain.Investor{
		InvestorID: m.InvestorID,
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		IsActive:   m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const investorColumns = `investor_id, name, email, phone, is_active, created_at, created_by, last_updated_at, last_updated_by`

// SaveInvestor inserts a new investor. An email collision surfaces as apperrors.ErrDuplicate.
func (r *PgxInvestorRepository) SaveInvestor(ctx context.Context, investor domain.Investor) error {
	query := `
		INSERT INTO investors (investor_id, name, email, phone, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		investor.InvestorID,
		investor.Name,
		investor.Email,
		investor.Phone,
		investor.IsActive,
		investor.CreatedAt,
		investor.CreatedBy,
		investor.LastUpdatedAt,
		investor.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: investor with email %s already exists", apperrors.ErrDuplicate, investor.Email)
		}
		return fmt.Errorf("failed to save investor %s: %w", investor.InvestorID, err)
	}
	return nil
}

// FindInvestorByID retrieves an investor by ID.
func (r *PgxInvestorRepository) FindInvestorByID(ctx context.Context, investorID string) (*domain.Investor, error) {
	query := `SELECT ` + investorColumns + ` FROM investors WHERE investor_id = $1;`
	var m models.Investor
	err := r.Pool.QueryRow(ctx, query, investorID).Scan(
		&m.InvestorID,
		&m.Name,
		&m.Email,
		&m.Phone,
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
		return nil, fmt.Errorf("failed to find investor by ID %s: %w", investorID, err)
	}
	investor := toDomainInvestor(m)
	return &investor, nil
}

// ListInvestors retrieves a paginated list of investors.
func (r *PgxInvestorRepository) ListInvestors(ctx context.Context, limit, offset int) ([]domain.Investor, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + investorColumns + `
		FROM investors
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list investors: %w", err)
	}
	defer rows.Close()

	investors := []domain.Investor{}
	for rows.Next() {
		var m models.Investor
		if err := rows.Scan(
			&m.InvestorID,
			&m.Name,
			&m.Email,
			&m.Phone,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan investor row: %w", err)
		}
		investors = append(investors, toDomainInvestor(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investor rows: %w", err)
	}
	return investors, nil
}

// UpdateInvestor updates an investor's mutable details.
func (r *PgxInvestorRepository) UpdateInvestor(ctx context.Context, investor domain.Investor) error {
	query := `
		UPDATE investors
		SET name = $2, email = $3, phone = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE investor_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		investor.InvestorID,
		investor.Name,
		investor.Email,
		investor.Phone,
		investor.IsActive,
		investor.LastUpdatedAt,
		investor.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update investor %s: %w", investor.InvestorID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("investor " + investor.InvestorID + " not found for update")
	}
	return nil
}

// DeactivateInvestor marks an investor as inactive.
func (r *PgxInvestorRepository) DeactivateInvestor(ctx context.Context, investorID string, userID string, now time.Time) error {
	query := `
		UPDATE investors
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE investor_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, investorID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate investor %s: %w", investorID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("investor " + investorID + " not found for deactivation")
	}
	return nil
}

// PgxInvestmentRepository persists investments.
type PgxInvestmentRepository struct {
	BaseRepository
}

func newPgxInvestmentRepository(pool *pgxpool.Pool) portsrepo.InvestmentRepository {
	return &PgxInvestmentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvestmentRepository = (*PgxInvestmentRepository)(nil)

func toDomainInvestment(m models.Investment) domain.Investment {
	return domain.Investment{
		InvestmentID: m.InvestmentID,
		InvestorID:   m.InvestorID,
		BusinessID:   m.BusinessID,
		VehicleID:    m.VehicleID,
		Amount:       m.Amount,
		InvestedAt:   m.InvestedAt,
		Notes:        m.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const investmentColumns = `investment_id, investor_id, business_id, vehicle_id, amount, invested_at, notes, created_at, created_by, last_updated_at, last_updated_by`

// SaveInvestment inserts a new investment.
func (r *PgxInvestmentRepository) SaveInvestment(ctx context.Context, investment domain.Investment) error {
	query := `
		INSERT INTO investments (investment_id, investor_id, business_id, vehicle_id, amount, invested_at, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		investment.InvestmentID,
		investment.InvestorID,
		investment.BusinessID,
		investment.VehicleID,
		investment.Amount,
		investment.InvestedAt,
		investment.Notes,
		investment.CreatedAt,
		investment.CreatedBy,
		investment.LastUpdatedAt,
		investment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save investment %s: %w", investment.InvestmentID, err)
	}
	return nil
}

// FindInvestmentByID retrieves an investment by ID.
func (r *PgxInvestmentRepository) FindInvestmentByID(ctx context.Context, investmentID string) (*domain.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE investment_id = $1;`
	var m models.Investment
	err := r.Pool.QueryRow(ctx, query, investmentID).Scan(
		&m.InvestmentID,
		&m.InvestorID,
		&m.BusinessID,
		&m.VehicleID,
		&m.Amount,
		&m.InvestedAt,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find investment by ID %s: %w", investmentID, err)
	}
	investment := toDomainInvestment(m)
	return &investment, nil
}

// ListInvestmentsByInvestor retrieves a paginated list of an investor's investments.
func (r *PgxInvestmentRepository) ListInvestmentsByInvestor(ctx context.Context, investorID string, limit, offset int) ([]domain.Investment, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + investmentColumns + `
		FROM investments
		WHERE investor_id = $1
		ORDER BY invested_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, investorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments for investor %s: %w", investorID, err)
	}
	defer rows.Close()

	investments := []domain.Investment{}
	for rows.Next() {
		var m models.Investment
		if err := rows.Scan(
			&m.InvestmentID,
			&m.InvestorID,
			&m.BusinessID,
			&m.VehicleID,
			&m.Amount,
			&m.InvestedAt,
			&m.Notes,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan investment row: %w", err)
		}
		investments = append(investments, toDomainInvestment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment rows: %w", err)
	}
	return investments, nil
}
