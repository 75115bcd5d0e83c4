package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the storage representation of a directed rate between two
// currencies. One row per (from, to) pair; the updater overwrites in place.
type ExchangeRate struct {
	RateID           string           `json:"rate_id"` // Primary Key (UUID)
	FromCurrencyCode string           `json:"from_currency_code"`
	ToCurrencyCode   string           `json:"to_currency_code"`
	Rate             decimal.Decimal  `json:"rate"`
	ReverseRate      decimal.Decimal  `json:"reverse_rate"`
	MinAmount        *decimal.Decimal `json:"min_amount,omitempty"`
	MaxAmount        *decimal.Decimal `json:"max_amount,omitempty"`
	Source           string           `json:"source"`
	IsActive         bool             `json:"is_active"`
	FetchedAt        time.Time        `json:"fetched_at"`
}
