package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the storage representation of an exchange order.
type Order struct {
	OrderID          int64           `json:"order_id"`     // internal numeric identity
	OrderNumber      string          `json:"order_number"` // shareable, unique, URL-safe
	FromCurrencyCode string          `json:"from_currency_code"`
	ToCurrencyCode   string          `json:"to_currency_code"`
	FromAmount       decimal.Decimal `json:"from_amount"`
	ToAmount         decimal.Decimal `json:"to_amount"`
	Rate             decimal.Decimal `json:"rate"`
	Commission       decimal.Decimal `json:"commission"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
	Status           string          `json:"status"`

	ClientName     string `json:"client_name"`
	ClientPhone    string `json:"client_phone"`
	ClientEmail    string `json:"client_email"`
	ClientTelegram string `json:"client_telegram,omitempty"`

	RecipientWallet  string `json:"recipient_wallet"`
	RecipientDetails string `json:"recipient_details,omitempty"`

	IPAddress string `json:"-"`
	UserAgent string `json:"-"`

	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   time.Time  `json:"expires_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// OrderStatusLog is one append-only row of an order's status history.
type OrderStatusLog struct {
	LogID     int64     `json:"log_id"`
	OrderID   int64     `json:"order_id"`
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
}
