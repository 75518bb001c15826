package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/budgetcr/budget_backend/internal/apperrors"
	"github.com/budgetcr/budget_backend/internal/core/domain"
	portssvc "github.com/budgetcr/budget_backend/internal/core/ports/services"
	"github.com/budgetcr/budget_backend/internal/dto"
	"github.com/budgetcr/budget_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// exchangeRateHandler handles HTTP requests related to exchange rates and
// currency conversion.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

func newExchangeRateHandler(rs portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{rateService: rs}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", h.createExchangeRate)
		rates.GET("", h.listExchangeRates)
		rates.GET("/latest", h.getLatestExchangeRate)
	}
	rg.GET("/convert", h.convert)
}

// createExchangeRate records a new exchange rate, scoped to the creator
// unless the request marks it global.
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rate, err := h.rateService.CreateExchangeRate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create exchange rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create exchange rate"})
		return
	}

	logger.Info("Exchange rate created",
		slog.String("from", string(rate.FromCurrencyCode)),
		slog.String("to", string(rate.ToCurrencyCode)),
		slog.String("rate_type", string(rate.RateType)),
	)
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// listExchangeRates returns the rate snapshot visible to the caller.
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rates, err := h.rateService.ListExchangeRates(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list exchange rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list exchange rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// getLatestExchangeRate returns the most recent rate for a pair. Query
// params: from, to, rateType (optional).
func (h *exchangeRateHandler) getLatestExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	from := c.Query("from")
	to := c.Query("to")
	rateType := strings.ToUpper(c.Query("rateType"))
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "'from' and 'to' query parameters are required"})
		return
	}

	rate, err := h.rateService.GetLatestExchangeRate(c.Request.Context(), from, to, rateType, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No exchange rate found for the pair"})
			return
		}
		logger.Error("Failed to get latest exchange rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve exchange rate"})
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// convert resolves an amount into a target currency using the caller's rate
// snapshot. Query params: amount (decimal), from, to. An unresolvable pair is
// a 200 with method UNRESOLVED, mirroring the dashboard semantics.
func (h *exchangeRateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	amountStr := c.Query("amount")
	from := strings.ToUpper(c.Query("from"))
	to := strings.ToUpper(c.Query("to"))
	if amountStr == "" || from == "" || to == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "'amount', 'from' and 'to' query parameters are required"})
		return
	}

	amountDec, err := decimal.NewFromString(amountStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid amount: " + err.Error()})
		return
	}
	if !domain.IsSupportedCurrency(domain.CurrencyCode(from)) || !domain.IsSupportedCurrency(domain.CurrencyCode(to)) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unsupported currency pair"})
		return
	}

	amount := domain.NewMoney(amountDec, domain.CurrencyCode(from))
	outcome, err := h.rateService.ConvertAmount(c.Request.Context(), userID, amount, domain.CurrencyCode(to))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to convert amount", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to convert amount"})
		return
	}

	c.JSON(http.StatusOK, dto.ToConversionResponse(outcome))
}
