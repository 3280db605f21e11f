package services

import (
	portsrepo "github.com/flotaops/fleet-finance-backend/internal/core/ports/repositories"
	portssvc "github.com/flotaops/fleet-finance-backend/internal/core/ports/services"
	"github.com/flotaops/fleet-finance-backend/internal/platform/config"
)

// NewServiceContainer wires every application service over the repository
// provider. The user service doubles as the admin authorizer for the flows
// that require the administrative capability.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg *config.Config) portssvc.ServiceContainer {
	userSvc := NewUserService(repos.UserRepo)
	boxSvc := NewBoxService(repos.BoxRepo, repos.BusinessRepo, userSvc, cfg.BoxGlobalFallback)

	return portssvc.ServiceContainer{
		User:     userSvc,
		Business: NewBusinessService(repos.BusinessRepo, userSvc),
		Vehicle:  NewVehicleService(repos.VehicleRepo, repos.BusinessRepo),
		Driver:   NewDriverService(repos.DriverRepo, repos.BusinessRepo),
		Investor: NewInvestorService(repos.InvestorRepo, userSvc),
		Investment: NewInvestmentService(
			repos.InvestmentRepo,
			repos.InvestorRepo,
			repos.BusinessRepo,
			repos.TimelineRepo,
		),
		Lookup: NewLookupService(repos.CategoryRepo, repos.PaymentMethodRepo, repos.StateRepo),
		Transaction: NewTransactionService(
			repos.TransactionRepo,
			repos.BusinessRepo,
			repos.CategoryRepo,
			repos.PaymentMethodRepo,
			repos.StateRepo,
		),
		Box:            boxSvc,
		PendingPayment: NewPendingPaymentService(repos.PendingPaymentRepo, repos.TransactionRepo, boxSvc, userSvc),
		Timeline:       NewTimelineService(repos.TimelineRepo),
	}
}
