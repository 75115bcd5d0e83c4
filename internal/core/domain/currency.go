package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency represents a tradeable currency in the domain.
// The code is a stable currency+network identifier, e.g. "USDT_TRC20" or "BTC".
type Currency struct {
	Code      string
	Name      string
	Symbol    string
	Network   string
	IconURL   string
	MinAmount decimal.Decimal
	MaxAmount *decimal.Decimal // nil means no upper bound
	Decimals  int32            // rounding precision for amounts in this currency
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
