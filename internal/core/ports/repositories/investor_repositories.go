package repositories

import (
	"context"
	"time"

	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
)

// InvestorRepository defines persistence operations for investors.
type InvestorRepository interface {
	SaveInvestor(ctx context.Context, investor domain.Investor) error
	FindInvestorByID(ctx context.Context, investorID string) (*domain.Investor, error)
	ListInvestors(ctx context.Context, limit, offset int) ([]domain.Investor, error)
	UpdateInvestor(ctx context.Context, investor domain.Investor) error
	DeactivateInvestor(ctx context.Context, investorID string, userID string, now time.Time) error
}

// InvestmentRepository defines persistence operations for investments.
type InvestmentRepository interface {
	SaveInvestment(ctx context.Context, investment domain.Investment) error
	FindInvestmentByID(ctx context.Context, investmentID string) (*domain.Investment, error)
	ListInvestmentsByInvestor(ctx context.Context, investorID string, limit, offset int) ([]domain.Investment, error)
}
