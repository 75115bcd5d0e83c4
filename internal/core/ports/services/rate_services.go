package services

import (
	"context"

	"github.com/olegmos-dev/crypto_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateSvcFacade exposes exchange-rate snapshots. GetExchangeRate resolves the
// directed pair, falling back to the inverse of the reverse pair, and applies
// the configured max-staleness policy; exhaustion of both surfaces as
// apperrors.ErrNoRateAvailable.
type RateSvcFacade interface {
	GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error)
	ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)

	// UpsertExchangeRate stores a fresh snapshot for the directed pair,
	// deriving the reverse rate. Used by the rate feed and administrative
	// tooling.
	UpsertExchangeRate(ctx context.Context, fromCode, toCode string, rate decimal.Decimal, source string) (*domain.ExchangeRate, error)
}
