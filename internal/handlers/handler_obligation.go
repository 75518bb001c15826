package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/budgetcr/budget_backend/internal/apperrors"
	"github.com/budgetcr/budget_backend/internal/core/domain"
	"github.com/budgetcr/budget_backend/internal/core/period"
	portssvc "github.com/budgetcr/budget_backend/internal/core/ports/services"
	"github.com/budgetcr/budget_backend/internal/dto"
	"github.com/budgetcr/budget_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// obligationHandler handles HTTP requests related to obligations and their
// payment ledger.
type obligationHandler struct {
	obligationService portssvc.ObligationSvcFacade
}

func newObligationHandler(os portssvc.ObligationSvcFacade) *obligationHandler {
	return &obligationHandler{obligationService: os}
}

// RegisterObligationRoutes registers routes related to obligations.
func RegisterObligationRoutes(rg *gin.RouterGroup, obligationService portssvc.ObligationSvcFacade) {
	h := newObligationHandler(obligationService)

	obligations := rg.Group("/obligations")
	{
		obligations.POST("", h.createObligation)
		obligations.GET("", h.listObligations)
		obligations.GET("/:obligationID", h.getObligation)
		obligations.PUT("/:obligationID", h.updateObligation)
		obligations.DELETE("/:obligationID", h.deleteObligation)

		obligations.POST("/:obligationID/payments", h.markPaid)
		obligations.DELETE("/:obligationID/payments", h.unmarkPaid)
		obligations.GET("/:obligationID/payments/status", h.paidStatus)
	}
}

// respondObligationError maps service errors onto HTTP statuses shared by the
// obligation endpoints.
func respondObligationError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Obligation belongs to another user"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Obligation not found"})
	case errors.Is(err, apperrors.ErrAlreadyPaid):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Obligation is already paid for this period"})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}

func (h *obligationHandler) createObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	obligation, err := h.obligationService.CreateObligation(c.Request.Context(), req, userID)
	if err != nil {
		respondObligationError(c, logger, err, "create obligation")
		return
	}

	logger.Info("Obligation created", slog.String("obligation_id", obligation.ObligationID))
	c.JSON(http.StatusCreated, dto.ToObligationResponse(obligation))
}

func (h *obligationHandler) listObligations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	obligations, err := h.obligationService.ListObligations(c.Request.Context(), userID)
	if err != nil {
		respondObligationError(c, logger, err, "list obligations")
		return
	}

	c.JSON(http.StatusOK, dto.ToListObligationResponse(obligations))
}

func (h *obligationHandler) getObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	obligation, err := h.obligationService.GetObligation(c.Request.Context(), userID, c.Param("obligationID"))
	if err != nil {
		respondObligationError(c, logger, err, "get obligation")
		return
	}

	c.JSON(http.StatusOK, dto.ToObligationResponse(obligation))
}

func (h *obligationHandler) updateObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	obligation, err := h.obligationService.UpdateObligation(c.Request.Context(), userID, c.Param("obligationID"), req)
	if err != nil {
		respondObligationError(c, logger, err, "update obligation")
		return
	}

	c.JSON(http.StatusOK, dto.ToObligationResponse(obligation))
}

func (h *obligationHandler) deleteObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.obligationService.DeleteObligation(c.Request.Context(), userID, c.Param("obligationID")); err != nil {
		respondObligationError(c, logger, err, "delete obligation")
		return
	}

	c.Status(http.StatusNoContent)
}

// markPaid records a payment for the current period. The body may override
// the recorded amount; an empty body records the configured amount.
func (h *obligationHandler) markPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.MarkPaidRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
			return
		}
	}

	var amount *domain.Money
	if req.Amount != nil {
		code := domain.BaseCurrency
		if req.CurrencyCode != nil {
			code = domain.CurrencyCode(*req.CurrencyCode)
		}
		m := domain.NewMoney(*req.Amount, code)
		amount = &m
	}

	instance, err := h.obligationService.MarkPaid(c.Request.Context(), userID, c.Param("obligationID"), amount, time.Now())
	if err != nil {
		respondObligationError(c, logger, err, "mark obligation paid")
		return
	}

	logger.Info("Obligation marked paid",
		slog.String("obligation_id", instance.ObligationID),
		slog.Time("period_start", instance.PeriodStart),
	)
	c.JSON(http.StatusCreated, dto.ToPaymentInstanceResponse(instance))
}

// unmarkPaid removes the payment for the current period.
func (h *obligationHandler) unmarkPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.obligationService.UnmarkPaid(c.Request.Context(), userID, c.Param("obligationID"), time.Now()); err != nil {
		respondObligationError(c, logger, err, "unmark obligation paid")
		return
	}

	c.Status(http.StatusNoContent)
}

// paidStatus reports whether the obligation is paid for the current period,
// with the period window and its display label.
func (h *obligationHandler) paidStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	now := time.Now()
	obligationID := c.Param("obligationID")

	obligation, err := h.obligationService.GetObligation(c.Request.Context(), userID, obligationID)
	if err != nil {
		respondObligationError(c, logger, err, "get obligation paid status")
		return
	}

	paid, err := h.obligationService.IsPaidForCurrentPeriod(c.Request.Context(), obligationID, now)
	if err != nil {
		respondObligationError(c, logger, err, "get obligation paid status")
		return
	}

	periodStart, err := period.CurrentPeriodStart(obligation.Cadence, now)
	if err != nil {
		respondObligationError(c, logger, err, "get obligation paid status")
		return
	}
	periodEnd, err := period.PeriodEnd(periodStart, obligation.Cadence)
	if err != nil {
		respondObligationError(c, logger, err, "get obligation paid status")
		return
	}

	c.JSON(http.StatusOK, dto.PaidStatusResponse{
		ObligationID: obligationID,
		Paid:         paid,
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,
		PeriodLabel:  period.DisplayText(periodStart, obligation.Cadence),
	})
}
