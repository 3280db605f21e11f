package services

// ServiceContainer holds instances of all the application services. This is
// the main entry point for accessing service functionality and is what the
// handlers are wired against.
type ServiceContainer struct {
	User           UserSvcFacade
	Business       BusinessSvcFacade
	Vehicle        VehicleSvcFacade
	Driver         DriverSvcFacade
	Investor       InvestorSvcFacade
	Investment     InvestmentSvcFacade
	Lookup         LookupSvcFacade
	Transaction    TransactionSvcFacade
	Box            BoxSvcFacade
	PendingPayment PendingPaymentSvcFacade
	Timeline       TimelineSvcFacade
}
