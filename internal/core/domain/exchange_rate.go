package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a directed rate snapshot between two currencies: Rate is
// units of the destination currency per unit of the source currency, and
// ReverseRate is its multiplicative inverse within rounding tolerance.
// MinAmount/MaxAmount are optional pair-specific overrides of the source
// currency's own bounds.
type ExchangeRate struct {
	RateID           string
	FromCurrencyCode string
	ToCurrencyCode   string
	Rate             decimal.Decimal
	ReverseRate      decimal.Decimal
	MinAmount        *decimal.Decimal
	MaxAmount        *decimal.Decimal
	Source           string
	IsActive         bool
	FetchedAt        time.Time
}

// Inverted returns the snapshot for the opposite direction. Pair-specific
// bound overrides are dropped: they are denominated in the original source
// currency and do not survive the direction flip, so the currency defaults
// apply instead.
func (r ExchangeRate) Inverted() ExchangeRate {
	return ExchangeRate{
		RateID:           r.RateID,
		FromCurrencyCode: r.ToCurrencyCode,
		ToCurrencyCode:   r.FromCurrencyCode,
		Rate:             r.ReverseRate,
		ReverseRate:      r.Rate,
		Source:           r.Source,
		IsActive:         r.IsActive,
		FetchedAt:        r.FetchedAt,
	}
}
