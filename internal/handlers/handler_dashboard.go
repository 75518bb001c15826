package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/budgetcr/budget_backend/internal/core/ports/services"
	"github.com/budgetcr/budget_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// dashboardHandler serves the aggregated dashboard summary.
type dashboardHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newDashboardHandler(rs portssvc.ReportingSvcFacade) *dashboardHandler {
	return &dashboardHandler{reportingService: rs}
}

// registerDashboardRoutes registers the dashboard routes.
func registerDashboardRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newDashboardHandler(reportingService)

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/summary", h.summary)
	}
}

// summary returns the caller's obligations converted to the base currency,
// with paid status per current period and totals.
func (h *dashboardHandler) summary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	summary, err := h.reportingService.DashboardSummary(c.Request.Context(), userID, time.Now())
	if err != nil {
		logger.Error("Failed to build dashboard summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build dashboard summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
