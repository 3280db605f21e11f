package pgsql

import (
	portsrepo "github.com/flotaops/fleet-finance-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql repository over a shared pool. The
// pending-payment repository receives the box repository so settlements can
// lock and debit the funding box inside their own transaction.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	boxRepo := newPgxOperatingBoxRepository(pool)
	return portsrepo.RepositoryProvider{
		UserRepo:           newPgxUserRepository(pool),
		BusinessRepo:       newPgxBusinessRepository(pool),
		VehicleRepo:        newPgxVehicleRepository(pool),
		DriverRepo:         newPgxDriverRepository(pool),
		InvestorRepo:       newPgxInvestorRepository(pool),
		InvestmentRepo:     newPgxInvestmentRepository(pool),
		CategoryRepo:       newPgxCategoryRepository(pool),
		PaymentMethodRepo:  newPgxPaymentMethodRepository(pool),
		StateRepo:          newPgxTransactionStateRepository(pool),
		TransactionRepo:    newPgxTransactionRepository(pool),
		BoxRepo:            boxRepo,
		PendingPaymentRepo: newPgxPendingPaymentRepository(pool, boxRepo),
		TimelineRepo:       newPgxTimelineRepository(pool),
	}
}
