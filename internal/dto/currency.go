package dto

import (
	"time"

	"github.com/olegmos-dev/crypto_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertCurrencyRequest defines the data needed to create or update a currency.
type UpsertCurrencyRequest struct {
	Code      string           `json:"code" binding:"required"`
	Name      string           `json:"name" binding:"required"`
	Symbol    string           `json:"symbol"`
	Network   string           `json:"network"`
	IconURL   string           `json:"icon_url"`
	MinAmount decimal.Decimal  `json:"min_amount"`
	MaxAmount *decimal.Decimal `json:"max_amount"`
	Decimals  int32            `json:"decimals"`
	IsActive  *bool            `json:"is_active"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	Code      string           `json:"code"`
	Name      string           `json:"name"`
	Symbol    string           `json:"symbol"`
	Network   string           `json:"network"`
	IconURL   string           `json:"icon_url,omitempty"`
	MinAmount decimal.Decimal  `json:"min_amount"`
	MaxAmount *decimal.Decimal `json:"max_amount,omitempty"`
	Decimals  int32            `json:"decimals"`
	IsActive  bool             `json:"is_active"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		Code:      curr.Code,
		Name:      curr.Name,
		Symbol:    curr.Symbol,
		Network:   curr.Network,
		IconURL:   curr.IconURL,
		MinAmount: curr.MinAmount,
		MaxAmount: curr.MaxAmount,
		Decimals:  curr.Decimals,
		IsActive:  curr.IsActive,
		CreatedAt: curr.CreatedAt,
		UpdatedAt: curr.UpdatedAt,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to CurrencyResponse DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, curr := range currencies {
		res[i] = ToCurrencyResponse(&curr)
	}
	return res
}
