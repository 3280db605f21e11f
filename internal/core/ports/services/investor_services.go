package services

import (
	"context"

	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	"github.com/flotaops/fleet-finance-backend/internal/dto"
)

// InvestorSvcFacade defines the investor service surface.
type InvestorSvcFacade interface {
	CreateInvestor(ctx context.Context, req dto.CreateInvestorRequest, creatorUserID string) (*domain.Investor, error)
	GetInvestorByID(ctx context.Context, investorID string) (*domain.Investor, error)
	ListInvestors(ctx context.Context, limit, offset int) ([]domain.Investor, error)
	DeactivateInvestor(ctx context.Context, investorID string, actingUserID string) error
}

// InvestmentSvcFacade defines the investment service surface.
type InvestmentSvcFacade interface {
	// CreateInvestment records a funding event and appends the matching entry
	// to the investor's timeline.
	CreateInvestment(ctx context.Context, req dto.CreateInvestmentRequest, creatorUserID string) (*domain.Investment, error)
	ListInvestmentsByInvestor(ctx context.Context, investorID string, limit, offset int) ([]domain.Investment, error)
}
