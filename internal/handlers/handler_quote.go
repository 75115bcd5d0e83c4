package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/olegmos-dev/crypto_exchange_app/internal/core/ports/services"
	"github.com/olegmos-dev/crypto_exchange_app/internal/dto"
	"github.com/olegmos-dev/crypto_exchange_app/internal/middleware"
	"github.com/olegmos-dev/crypto_exchange_app/internal/platform/metrics"
)

// quoteHandler serves the conversion calculator.
type quoteHandler struct {
	quoteService portssvc.QuoteSvcFacade
	metrics      *metrics.ExchangeMetrics
}

func newQuoteHandler(qs portssvc.QuoteSvcFacade, m *metrics.ExchangeMetrics) *quoteHandler {
	return &quoteHandler{quoteService: qs, metrics: m}
}

// registerQuoteRoutes registers the calculator route.
func registerQuoteRoutes(rg *gin.RouterGroup, quoteService portssvc.QuoteSvcFacade, m *metrics.ExchangeMetrics) {
	h := newQuoteHandler(quoteService, m)
	rg.POST("/calculate", h.calculate)
}

func (h *quoteHandler) calculate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	quote, err := h.quoteService.Quote(c.Request.Context(), req.FromCurrency, req.ToCurrency, req.FromAmount)
	if err != nil {
		_, kind := classifyError(err)
		h.metrics.RecordQuoteError(kind)
		respondError(c, logger, err)
		return
	}

	h.metrics.RecordQuote(quote.FromCurrency.Code, quote.ToCurrency.Code)
	c.JSON(http.StatusOK, dto.ToCalculateResponse(quote))
}
