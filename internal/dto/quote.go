package dto

import (
	"github.com/olegmos-dev/crypto_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateRequest defines the input of the quote calculator.
type CalculateRequest struct {
	FromCurrency string          `json:"from_currency" binding:"required,currencycode"`
	ToCurrency   string          `json:"to_currency" binding:"required,currencycode"`
	FromAmount   decimal.Decimal `json:"from_amount" binding:"required"`
}

// CalculateResponse defines the calculator output: the destination amount
// after commission, the commission breakdown and the rate snapshot the quote
// was computed from.
type CalculateResponse struct {
	FromAmount     decimal.Decimal      `json:"from_amount"`
	ToAmount       decimal.Decimal      `json:"to_amount"`
	Rate           decimal.Decimal      `json:"rate"`
	Commission     decimal.Decimal      `json:"commission"`
	CommissionRate decimal.Decimal      `json:"commission_rate"`
	ExchangeRate   ExchangeRateResponse `json:"exchange_rate"`
}

// ToCalculateResponse converts a domain.Quote to CalculateResponse DTO
func ToCalculateResponse(q *domain.Quote) CalculateResponse {
	return CalculateResponse{
		FromAmount:     q.FromAmount,
		ToAmount:       q.ToAmount,
		Rate:           q.Rate,
		Commission:     q.Commission,
		CommissionRate: q.CommissionRate,
		ExchangeRate:   ToExchangeRateResponse(&q.ExchangeRate),
	}
}
