package repositories

// RepositoryProvider bundles every repository implementation for injection
// into the service container.
type RepositoryProvider struct {
	UserRepo           UserRepositoryFacade
	BusinessRepo       BusinessRepository
	VehicleRepo        VehicleRepository
	DriverRepo         DriverRepository
	InvestorRepo       InvestorRepository
	InvestmentRepo     InvestmentRepository
	CategoryRepo       CategoryRepository
	PaymentMethodRepo  PaymentMethodRepository
	StateRepo          TransactionStateRepository
	TransactionRepo    TransactionRepositoryFacade
	BoxRepo            OperatingBoxRepositoryWithTx
	PendingPaymentRepo PendingPaymentRepositoryFacade
	TimelineRepo       TimelineRepository
}
