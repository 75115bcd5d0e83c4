package mapping

import (
	"github.com/olegmos-dev/crypto_exchange_app/internal/core/domain"
	"github.com/olegmos-dev/crypto_exchange_app/internal/models"
)

// ToModelOrder converts a domain Order to a model Order
func ToModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:          d.OrderID,
		OrderNumber:      d.OrderNumber,
		FromCurrencyCode: d.FromCurrencyCode,
		ToCurrencyCode:   d.ToCurrencyCode,
		FromAmount:       d.FromAmount,
		ToAmount:         d.ToAmount,
		Rate:             d.Rate,
		Commission:       d.Commission,
		CommissionRate:   d.CommissionRate,
		Status:           string(d.Status),
		ClientName:       d.ClientName,
		ClientPhone:      d.ClientPhone,
		ClientEmail:      d.ClientEmail,
		ClientTelegram:   d.ClientTelegram,
		RecipientWallet:  d.RecipientWallet,
		RecipientDetails: d.RecipientDetails,
		IPAddress:        d.IPAddress,
		UserAgent:        d.UserAgent,
		CreatedAt:        d.CreatedAt,
		ExpiresAt:        d.ExpiresAt,
		CompletedAt:      d.CompletedAt,
	}
}

// ToDomainOrder converts a model Order to a domain Order. The status history
// is loaded separately and attached by the repository when requested.
func ToDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderID:          m.OrderID,
		OrderNumber:      m.OrderNumber,
		FromCurrencyCode: m.FromCurrencyCode,
		ToCurrencyCode:   m.ToCurrencyCode,
		FromAmount:       m.FromAmount,
		ToAmount:         m.ToAmount,
		Rate:             m.Rate,
		Commission:       m.Commission,
		CommissionRate:   m.CommissionRate,
		Status:           domain.OrderStatus(m.Status),
		ClientName:       m.ClientName,
		ClientPhone:      m.ClientPhone,
		ClientEmail:      m.ClientEmail,
		ClientTelegram:   m.ClientTelegram,
		RecipientWallet:  m.RecipientWallet,
		RecipientDetails: m.RecipientDetails,
		IPAddress:        m.IPAddress,
		UserAgent:        m.UserAgent,
		CreatedAt:        m.CreatedAt,
		ExpiresAt:        m.ExpiresAt,
		CompletedAt:      m.CompletedAt,
	}
}

// ToDomainOrderSlice converts a slice of model Orders to domain Orders
func ToDomainOrderSlice(ms []models.Order) []domain.Order {
	ds := make([]domain.Order, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOrder(m)
	}
	return ds
}
