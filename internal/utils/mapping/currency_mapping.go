package mapping

import (
	"github.com/olegmos-dev/crypto_exchange_app/internal/core/domain"
	"github.com/olegmos-dev/crypto_exchange_app/internal/models"
)

// ToModelCurrency converts a domain Currency to a model Currency
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyCode: d.Code,
		Name:         d.Name,
		Symbol:       d.Symbol,
		Network:      d.Network,
		IconURL:      d.IconURL,
		MinAmount:    d.MinAmount,
		MaxAmount:    d.MaxAmount,
		Decimals:     d.Decimals,
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// ToDomainCurrency converts a model Currency to a domain Currency
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		Code:      m.CurrencyCode,
		Name:      m.Name,
		Symbol:    m.Symbol,
		Network:   m.Network,
		IconURL:   m.IconURL,
		MinAmount: m.MinAmount,
		MaxAmount: m.MaxAmount,
		Decimals:  m.Decimals,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToDomainCurrencySlice converts a slice of model Currencies to a slice of domain Currencies
func ToDomainCurrencySlice(ms []models.Currency) []domain.Currency {
	ds := make([]domain.Currency, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrency(m)
	}
	return ds
}
