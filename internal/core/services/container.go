package services

import (
	portsrepo "github.com/olegmos-dev/crypto_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/olegmos-dev/crypto_exchange_app/internal/core/ports/services"
	"github.com/olegmos-dev/crypto_exchange_app/internal/platform/config"
)

// NewServiceContainer wires the repositories and configuration into the full
// service graph.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg *config.Config) (*portssvc.ServiceContainer, error) {
	currencyService := NewCurrencyService(repos.Currency, nil)
	rateService := NewRateService(repos.ExchangeRate, currencyService, cfg.RateMaxStaleness, nil)
	quoteService := NewQuoteService(currencyService, rateService, cfg.CommissionRatePercent)

	orderService, err := NewOrderService(repos.Order, quoteService, OrderPolicy{
		TTL:               cfg.OrderTTL,
		MaxNumberAttempts: cfg.OrderNumberMaxAttempts,
	})
	if err != nil {
		return nil, err
	}

	return &portssvc.ServiceContainer{
		Currency: currencyService,
		Rate:     rateService,
		Quote:    quoteService,
		Order:    orderService,
	}, nil
}
