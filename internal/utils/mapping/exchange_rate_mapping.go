package mapping

import (
	"github.com/olegmos-dev/crypto_exchange_app/internal/core/domain"
	"github.com/olegmos-dev/crypto_exchange_app/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		RateID:           d.RateID,
		FromCurrencyCode: d.FromCurrencyCode,
		ToCurrencyCode:   d.ToCurrencyCode,
		Rate:             d.Rate,
		ReverseRate:      d.ReverseRate,
		MinAmount:        d.MinAmount,
		MaxAmount:        d.MaxAmount,
		Source:           d.Source,
		IsActive:         d.IsActive,
		FetchedAt:        d.FetchedAt,
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		RateID:           m.RateID,
		FromCurrencyCode: m.FromCurrencyCode,
		ToCurrencyCode:   m.ToCurrencyCode,
		Rate:             m.Rate,
		ReverseRate:      m.ReverseRate,
		MinAmount:        m.MinAmount,
		MaxAmount:        m.MaxAmount,
		Source:           m.Source,
		IsActive:         m.IsActive,
		FetchedAt:        m.FetchedAt,
	}
}

// ToDomainExchangeRateSlice converts a slice of model ExchangeRates to domain ExchangeRates
func ToDomainExchangeRateSlice(ms []models.ExchangeRate) []domain.ExchangeRate {
	ds := make([]domain.ExchangeRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExchangeRate(m)
	}
	return ds
}
