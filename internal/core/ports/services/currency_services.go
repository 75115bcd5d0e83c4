package services

import (
	"context"

	"github.com/olegmos-dev/crypto_exchange_app/internal/core/domain"
	"github.com/olegmos-dev/crypto_exchange_app/internal/dto"
)

// CurrencySvcFacade exposes the currency registry to handlers and to the
// other services.
type CurrencySvcFacade interface {
	// UpsertCurrency creates or updates a currency (administrative boundary).
	UpsertCurrency(ctx context.Context, req dto.UpsertCurrencyRequest) (*domain.Currency, error)

	// GetCurrencyByCode returns apperrors.ErrUnknownCurrency for codes not in
	// the registry, regardless of active flag.
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// GetActiveCurrencyByCode additionally rejects inactive currencies with
	// apperrors.ErrInactiveCurrency.
	GetActiveCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// ListActiveCurrencies returns active currencies ordered by code.
	ListActiveCurrencies(ctx context.Context) ([]domain.Currency, error)
}
