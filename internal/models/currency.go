package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is the storage representation of a tradeable currency.
type Currency struct {
	CurrencyCode string           `json:"currency_code"` // Primary Key (e.g., "USDT_TRC20")
	Name         string           `json:"name"`          // e.g., "Tether (TRC20)"
	Symbol       string           `json:"symbol"`        // e.g., "USDT"
	Network      string           `json:"network"`       // e.g., "TRON"
	IconURL      string           `json:"icon_url"`
	MinAmount    decimal.Decimal  `json:"min_amount"`
	MaxAmount    *decimal.Decimal `json:"max_amount,omitempty"`
	Decimals     int32            `json:"decimals"`
	IsActive     bool             `json:"is_active"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}
