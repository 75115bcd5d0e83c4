package services

// ServiceContainer holds all service facades for dependency injection into
// the HTTP layer.
type ServiceContainer struct {
	Currency CurrencySvcFacade
	Rate     RateSvcFacade
	Quote    QuoteSvcFacade
	Order    OrderSvcFacade
}
