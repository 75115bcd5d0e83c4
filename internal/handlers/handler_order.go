package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/olegmos-dev/crypto_exchange_app/internal/core/ports/services"
	"github.com/olegmos-dev/crypto_exchange_app/internal/dto"
	"github.com/olegmos-dev/crypto_exchange_app/internal/middleware"
	"github.com/olegmos-dev/crypto_exchange_app/internal/platform/metrics"
)

// orderHandler serves the public order surface: submission and lookup by
// order number.
type orderHandler struct {
	orderService portssvc.OrderSvcFacade
	metrics      *metrics.ExchangeMetrics
}

func newOrderHandler(os portssvc.OrderSvcFacade, m *metrics.ExchangeMetrics) *orderHandler {
	return &orderHandler{orderService: os, metrics: m}
}

// registerOrderRoutes registers the public order routes.
func registerOrderRoutes(rg *gin.RouterGroup, orderService portssvc.OrderSvcFacade, m *metrics.ExchangeMetrics) {
	h := newOrderHandler(orderService, m)

	orders := rg.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("/:number", h.getOrder)
	}
}

func (h *orderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	meta := dto.RequestMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req, meta)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	h.metrics.RecordOrderCreated(order.FromCurrencyCode, order.ToCurrencyCode)
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

func (h *orderHandler) getOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	number := c.Param("number")

	order, err := h.orderService.GetOrderByNumber(c.Request.Context(), number)
	if err != nil {
		respondError(c, logger.With(slog.String("order_number", number)), err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}
