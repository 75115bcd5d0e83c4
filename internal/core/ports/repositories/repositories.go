package repositories

// RepositoryProvider bundles all repositories so wiring code can pass one
// value around instead of a parameter per repository.
type RepositoryProvider struct {
	Currency     CurrencyRepository
	ExchangeRate ExchangeRateRepository
	Order        OrderRepository
}
