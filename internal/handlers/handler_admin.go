package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/olegmos-dev/crypto_exchange_app/internal/apperrors"
	"github.com/olegmos-dev/crypto_exchange_app/internal/core/domain"
	portssvc "github.com/olegmos-dev/crypto_exchange_app/internal/core/ports/services"
	"github.com/olegmos-dev/crypto_exchange_app/internal/dto"
	"github.com/olegmos-dev/crypto_exchange_app/internal/middleware"
	"github.com/olegmos-dev/crypto_exchange_app/internal/platform/metrics"
)

// adminHandler serves the operator surface: order management, currency
// administration and the statistics dashboard.
type adminHandler struct {
	orderService    portssvc.OrderSvcFacade
	currencyService portssvc.CurrencySvcFacade
	metrics         *metrics.ExchangeMetrics
}

func newAdminHandler(os portssvc.OrderSvcFacade, cs portssvc.CurrencySvcFacade, m *metrics.ExchangeMetrics) *adminHandler {
	return &adminHandler{orderService: os, currencyService: cs, metrics: m}
}

// registerAdminRoutes registers the operator routes.
func registerAdminRoutes(rg *gin.RouterGroup, orderService portssvc.OrderSvcFacade, currencyService portssvc.CurrencySvcFacade, m *metrics.ExchangeMetrics) {
	h := newAdminHandler(orderService, currencyService, m)

	admin := rg.Group("/admin")
	{
		admin.GET("/orders", h.listOrders)
		admin.PUT("/orders/:number/status", h.updateOrderStatus)
		admin.POST("/currencies", h.upsertCurrency)
		admin.GET("/statistics", h.statistics)
	}
}

func (h *adminHandler) listOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	orders, nextToken, err := h.orderService.ListOrders(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OrderListResponse{
		Orders:        dto.ToListOrderResponse(orders),
		NextPageToken: nextToken,
	})
}

func (h *adminHandler) updateOrderStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	number := c.Param("number")
	logger = logger.With(slog.String("order_number", number))

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	target, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		respondError(c, logger, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		return
	}

	order, err := h.orderService.TransitionOrder(c.Request.Context(), number, target)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	h.metrics.RecordTransition(string(target))
	if target == domain.StatusExpired {
		h.metrics.RecordExpired(1)
	}
	logger.Info("Order status updated", slog.String("status", string(order.Status)))
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *adminHandler) upsertCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpsertCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	currency, err := h.currencyService.UpsertCurrency(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger.With(slog.String("currency_code", req.Code)), err)
		return
	}

	logger.Info("Currency upserted", slog.String("currency_code", currency.Code))
	c.JSON(http.StatusCreated, dto.ToCurrencyResponse(currency))
}

func (h *adminHandler) statistics(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	stats, err := h.orderService.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatisticsResponse(stats))
}
