package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/olegmos-dev/crypto_exchange_app/internal/apperrors"
	"github.com/olegmos-dev/crypto_exchange_app/internal/dto"
)

// classifyError maps a service error onto an HTTP status and a stable
// machine-readable kind. The kind is part of the API contract; clients branch
// on it instead of parsing messages.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidPair):
		return http.StatusBadRequest, "invalid_pair"
	case errors.Is(err, apperrors.ErrInvalidAmount):
		return http.StatusBadRequest, "invalid_amount"
	case errors.Is(err, apperrors.ErrBelowMinimum):
		return http.StatusUnprocessableEntity, "below_minimum"
	case errors.Is(err, apperrors.ErrAboveMaximum):
		return http.StatusUnprocessableEntity, "above_maximum"
	case errors.Is(err, apperrors.ErrUnknownCurrency):
		return http.StatusNotFound, "unknown_currency"
	case errors.Is(err, apperrors.ErrInactiveCurrency):
		return http.StatusUnprocessableEntity, "inactive_currency"
	case errors.Is(err, apperrors.ErrNoRateAvailable):
		return http.StatusServiceUnavailable, "no_rate_available"
	case errors.Is(err, apperrors.ErrOrderNotFound):
		return http.StatusNotFound, "order_not_found"
	case errors.Is(err, apperrors.ErrInvalidTransition):
		return http.StatusConflict, "invalid_transition"
	case errors.Is(err, apperrors.ErrOrderAlreadyFinalized):
		return http.StatusConflict, "order_finalized"
	case errors.Is(err, apperrors.ErrIdentityAllocationFailed):
		return http.StatusServiceUnavailable, "identity_allocation_failed"
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict, "duplicate"
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "not_found"
	}
	return http.StatusInternalServerError, "internal"
}

// respondError writes the uniform error envelope. Internal failures are
// logged with the cause but never leak it to the client.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	status, kind := classifyError(err)

	if status >= http.StatusInternalServerError && kind == "internal" {
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(status, dto.ErrorResponse{Error: "Internal server error", ErrorKind: kind})
		return
	}

	logger.Warn("Request rejected", slog.String("error_kind", kind), slog.String("error", err.Error()))
	c.JSON(status, dto.ErrorResponse{Error: err.Error(), ErrorKind: kind})
}

// respondBindError reports a malformed or unparseable request body.
func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error(), ErrorKind: "validation"})
}
