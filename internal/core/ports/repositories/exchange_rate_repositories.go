package repositories

import (
	"context"

	"github.com/olegmos-dev/crypto_exchange_app/internal/core/domain"
)

// ExchangeRateRepository defines persistence operations for rate snapshots.
// There is at most one row per directed (from, to) pair.
type ExchangeRateRepository interface {
	// UpsertExchangeRate inserts the snapshot or overwrites the existing row
	// for the same directed pair.
	UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// FindExchangeRate returns the active snapshot for the exact directed
	// pair, or apperrors.ErrNotFound.
	FindExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error)

	// ListActiveExchangeRates returns all active snapshots.
	ListActiveExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)
}
