package dto

import (
	"time"

	"github.com/olegmos-dev/crypto_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRateResponse defines the structure for API responses containing a
// directed rate snapshot.
type ExchangeRateResponse struct {
	FromCurrencyCode string           `json:"from_currency"`
	ToCurrencyCode   string           `json:"to_currency"`
	Rate             decimal.Decimal  `json:"rate"`
	ReverseRate      decimal.Decimal  `json:"reverse_rate"`
	MinAmount        *decimal.Decimal `json:"min_amount,omitempty"`
	MaxAmount        *decimal.Decimal `json:"max_amount,omitempty"`
	Source           string           `json:"source,omitempty"`
	FetchedAt        time.Time        `json:"updated_at"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Rate:             rate.Rate,
		ReverseRate:      rate.ReverseRate,
		MinAmount:        rate.MinAmount,
		MaxAmount:        rate.MaxAmount,
		Source:           rate.Source,
		FetchedAt:        rate.FetchedAt,
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}
