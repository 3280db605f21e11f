package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	portsrepo "github.com/flotaops/fleet-finance-backend/internal/core/ports/repositories"
	portssvc "github.com/flotaops/fleet-finance-backend/internal/core/ports/services"
	"github.com/flotaops/fleet-finance-backend/internal/dto"
	"github.com/flotaops/fleet-finance-backend/internal/middleware"
	"github.com/google/uuid"
)

type investorService struct {
	investorRepo portsrepo.InvestorRepository
	authorizer   portssvc.AdminAuthorizerSvc
}

// NewInvestorService creates a new investor service.
func NewInvestorService(investorRepo portsrepo.InvestorRepository, authorizer portssvc.AdminAuthorizerSvc) portssvc.InvestorSvcFacade {
	return &investorService{investorRepo: investorRepo, authorizer: authorizer}
}

var _ portssvc.InvestorSvcFacade = (*investorService)(nil)

func (s *investorService) CreateInvestor(ctx context.Context, req dto.CreateInvestorRequest, creatorUserID string) (*domain.Investor, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	investor := domain.Investor{
		InvestorID: uuid.NewString(),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.investorRepo.SaveInvestor(ctx, investor); err != nil {
		logger.Error("Failed to save investor", slog.String("name", req.Name), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Investor created", slog.String("investor_id", investor.InvestorID))
	return &investor, nil
}

func (s *investorService) GetInvestorByID(ctx context.Context, investorID string) (*domain.Investor, error) {
	return s.investorRepo.FindInvestorByID(ctx, investorID)
}

func (s *investorService) ListInvestors(ctx context.Context, limit, offset int) ([]domain.Investor, error) {
	return s.investorRepo.ListInvestors(ctx, limit, offset)
}

func (s *investorService) DeactivateInvestor(ctx context.Context, investorID string, actingUserID string) error {
	if err := s.authorizer.RequireAdmin(ctx, actingUserID); err != nil {
		return err
	}
	return s.investorRepo.DeactivateInvestor(ctx, investorID, actingUserID, time.Now())
}

type investmentService struct {
	investmentRepo portsrepo.InvestmentRepository
	investorRepo   portsrepo.InvestorRepository
	businessRepo   portsrepo.BusinessRepository
	timelineRepo   portsrepo.TimelineRepository
}

// NewInvestmentService creates a new investment service.
func NewInvestmentService(
	investmentRepo portsrepo.InvestmentRepository,
	investorRepo portsrepo.InvestorRepository,
	businessRepo portsrepo.BusinessRepository,
	timelineRepo portsrepo.TimelineRepository,
) portssvc.InvestmentSvcFacade {
	return &investmentService{
		investmentRepo: investmentRepo,
		investorRepo:   investorRepo,
		businessRepo:   businessRepo,
		timelineRepo:   timelineRepo,
	}
}

var _ portssvc.InvestmentSvcFacade = (*investmentService)(nil)

// CreateInvestment records a funding event and appends the matching entry to
// the investor's timeline.
func (s *investmentService) CreateInvestment(ctx context.Context, req dto.CreateInvestmentRequest, creatorUserID string) (*domain.Investment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := checkAmountScale(req.Amount, "investment amount"); err != nil {
		return nil, err
	}

	investor, err := s.investorRepo.FindInvestorByID(ctx, req.InvestorID)
	if err != nil {
		return nil, err
	}
	business, err := s.businessRepo.FindBusinessByID(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	investedAt := now
	if req.InvestedAt != nil {
		investedAt = *req.InvestedAt
	}

	investment := domain.Investment{
		InvestmentID: uuid.NewString(),
		InvestorID:   investor.InvestorID,
		BusinessID:   business.BusinessID,
		VehicleID:    req.VehicleID,
		Amount:       req.Amount,
		InvestedAt:   investedAt,
		Notes:        req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.investmentRepo.SaveInvestment(ctx, investment); err != nil {
		logger.Error("Failed to save investment", slog.String("investor_id", req.InvestorID), slog.String("error", err.Error()))
		return nil, err
	}

	event := domain.TimelineEvent{
		EventID:   uuid.NewString(),
		OwnerKind: domain.OwnerInvestor,
		OwnerID:   investor.InvestorID,
		Title:     fmt.Sprintf("Inversion de %s en %s", investment.Amount.String(), business.Name),
		Body:      req.Notes,
		EventDate: investedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.timelineRepo.SaveEvent(ctx, event); err != nil {
		// The investment itself is committed; a missing timeline entry is
		// recoverable and must not fail the funding operation.
		logger.Warn("Failed to append investment timeline event",
			slog.String("investment_id", investment.InvestmentID),
			slog.String("error", err.Error()),
		)
	}

	logger.Info("Investment recorded",
		slog.String("investment_id", investment.InvestmentID),
		slog.String("investor_id", investor.InvestorID),
		slog.String("amount", investment.Amount.String()),
	)
	return &investment, nil
}

func (s *investmentService) ListInvestmentsByInvestor(ctx context.Context, investorID string, limit, offset int) ([]domain.Investment, error) {
	return s.investmentRepo.ListInvestmentsByInvestor(ctx, investorID, limit, offset)
}
