package dto

import (
	"time"

	"github.com/olegmos-dev/crypto_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest defines the order submission payload. The currency pair
// and amount are bound strictly; client contact and payout fields are
// validated by the order service so failures can name the offending field.
type CreateOrderRequest struct {
	FromCurrency string          `json:"from_currency" binding:"required,currencycode"`
	ToCurrency   string          `json:"to_currency" binding:"required,currencycode"`
	FromAmount   decimal.Decimal `json:"from_amount" binding:"required"`

	ClientName     string `json:"client_name"`
	ClientPhone    string `json:"client_phone"`
	ClientEmail    string `json:"client_email"`
	ClientTelegram string `json:"client_telegram"`

	RecipientWallet  string `json:"recipient_wallet"`
	RecipientDetails string `json:"recipient_details"`
}

// RequestMeta carries transport-level request metadata captured by the
// adapter and recorded on the order for the audit trail.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// UpdateOrderStatusRequest defines the admin status-change payload.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListOrdersRequest defines the admin listing query.
type ListOrdersRequest struct {
	Status    string `form:"status"`
	Limit     int    `form:"limit"`
	PageToken string `form:"page_token"`
}

// StatusChangeResponse is one entry of an order's status history.
type StatusChangeResponse struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
}

// OrderResponse defines the full order representation returned to clients.
// Both identities are exposed; the order number is the shareable key.
type OrderResponse struct {
	OrderID        int64           `json:"id"`
	OrderNumber    string          `json:"order_number"`
	FromCurrency   string          `json:"from_currency"`
	ToCurrency     string          `json:"to_currency"`
	FromAmount     decimal.Decimal `json:"from_amount"`
	ToAmount       decimal.Decimal `json:"to_amount"`
	Rate           decimal.Decimal `json:"rate"`
	Commission     decimal.Decimal `json:"commission"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	Status         string          `json:"status"`

	ClientName     string `json:"client_name"`
	ClientPhone    string `json:"client_phone"`
	ClientEmail    string `json:"client_email"`
	ClientTelegram string `json:"client_telegram,omitempty"`

	RecipientWallet  string `json:"recipient_wallet"`
	RecipientDetails string `json:"recipient_details,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   time.Time  `json:"expires_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	StatusHistory []StatusChangeResponse `json:"status_history,omitempty"`
}

// ToOrderResponse converts a domain.Order to OrderResponse DTO
func ToOrderResponse(o *domain.Order) OrderResponse {
	history := make([]StatusChangeResponse, len(o.StatusHistory))
	for i, ch := range o.StatusHistory {
		history[i] = StatusChangeResponse{Status: string(ch.Status), ChangedAt: ch.ChangedAt}
	}
	return OrderResponse{
		OrderID:          o.OrderID,
		OrderNumber:      o.OrderNumber,
		FromCurrency:     o.FromCurrencyCode,
		ToCurrency:       o.ToCurrencyCode,
		FromAmount:       o.FromAmount,
		ToAmount:         o.ToAmount,
		Rate:             o.Rate,
		Commission:       o.Commission,
		CommissionRate:   o.CommissionRate,
		Status:           string(o.Status),
		ClientName:       o.ClientName,
		ClientPhone:      o.ClientPhone,
		ClientEmail:      o.ClientEmail,
		ClientTelegram:   o.ClientTelegram,
		RecipientWallet:  o.RecipientWallet,
		RecipientDetails: o.RecipientDetails,
		CreatedAt:        o.CreatedAt,
		ExpiresAt:        o.ExpiresAt,
		CompletedAt:      o.CompletedAt,
		StatusHistory:    history,
	}
}

// ToListOrderResponse converts a slice of domain.Order to OrderResponse DTOs
func ToListOrderResponse(orders []domain.Order) []OrderResponse {
	res := make([]OrderResponse, len(orders))
	for i := range orders {
		res[i] = ToOrderResponse(&orders[i])
	}
	return res
}

// OrderListResponse wraps a page of orders with its continuation token.
type OrderListResponse struct {
	Orders        []OrderResponse `json:"orders"`
	NextPageToken string          `json:"next_page_token,omitempty"`
}

// StatisticsResponse aggregates order counts for the admin dashboard.
type StatisticsResponse struct {
	TotalOrders int64            `json:"total_orders"`
	ByStatus    map[string]int64 `json:"by_status"`
	TodayOrders int64            `json:"today_orders"`
	WeekOrders  int64            `json:"week_orders"`
}

// ToStatisticsResponse converts domain.OrderStatistics to its DTO.
func ToStatisticsResponse(s *domain.OrderStatistics) StatisticsResponse {
	byStatus := make(map[string]int64, len(s.ByStatus))
	for status, n := range s.ByStatus {
		byStatus[string(status)] = n
	}
	return StatisticsResponse{
		TotalOrders: s.TotalOrders,
		ByStatus:    byStatus,
		TodayOrders: s.TodayOrders,
		WeekOrders:  s.WeekOrders,
	}
}
