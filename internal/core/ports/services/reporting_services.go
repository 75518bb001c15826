package services

import (
	"context"
	"time"

	"github.com/budgetcr/budget_backend/internal/dto"
)

// ReportingSvcFacade aggregates an owner's obligations into the dashboard
// summary: paid flags, base-currency conversions, and deduplicated warnings.
type ReportingSvcFacade interface {
	DashboardSummary(ctx context.Context, ownerID string, now time.Time) (*dto.DashboardSummaryResponse, error)
}
