package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/olegmos-dev/crypto_exchange_app/internal/core/ports/services"
	"github.com/olegmos-dev/crypto_exchange_app/internal/platform/config"
	"github.com/olegmos-dev/crypto_exchange_app/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service facades. rateLimitMW guards the public group only; nil
// disables it (tests).
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	m *metrics.ExchangeMetrics,
	rateLimitMW gin.HandlerFunc,
) {
	registerCustomValidators()

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupAPIV1Routes(r, services, m, rateLimitMW)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// per-entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	m *metrics.ExchangeMetrics,
	rateLimitMW gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1")
	if rateLimitMW != nil {
		v1.Use(rateLimitMW)
	}

	registerCurrencyRoutes(v1, services.Currency)
	registerRateRoutes(v1, services.Rate)
	registerQuoteRoutes(v1, services.Quote, m)
	registerOrderRoutes(v1, services.Order, m)

	// The operator surface shares the group; network-level access control is
	// expected in front of it.
	registerAdminRoutes(v1, services.Order, services.Currency, m)
}
