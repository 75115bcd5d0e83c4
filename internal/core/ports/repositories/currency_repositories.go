package repositories

import (
	"context"

	"github.com/olegmos-dev/crypto_exchange_app/internal/core/domain"
)

// CurrencyRepository defines persistence operations for the currency registry.
type CurrencyRepository interface {
	// SaveCurrency inserts a currency or updates it in place (administrative upsert).
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// FindCurrencyByCode returns apperrors.ErrNotFound when the code is unknown.
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// ListActiveCurrencies returns active currencies ordered by code.
	ListActiveCurrencies(ctx context.Context) ([]domain.Currency, error)
}
