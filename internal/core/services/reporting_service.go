package services

import (
	"context"
	"fmt"
	"time"

	"github.com/budgetcr/budget_backend/internal/apperrors"
	"github.com/budgetcr/budget_backend/internal/core/domain"
	"github.com/budgetcr/budget_backend/internal/core/fx"
	"github.com/budgetcr/budget_backend/internal/core/period"
	portssvc "github.com/budgetcr/budget_backend/internal/core/ports/services"
	"github.com/budgetcr/budget_backend/internal/dto"
)

// ReportingService aggregates an owner's obligations into the dashboard
// summary: paid flags from one batch ledger call, amounts converted to the
// base currency against one rate snapshot, and warnings deduplicated by
// currency pair. Unresolved conversions keep the original amount so the
// aggregate always completes.
type ReportingService struct {
	obligationSvc portssvc.ObligationSvcFacade
	rateSvc       portssvc.ExchangeRateSvcFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(obligationSvc portssvc.ObligationSvcFacade, rateSvc portssvc.ExchangeRateSvcFacade) *ReportingService {
	return &ReportingService{
		obligationSvc: obligationSvc,
		rateSvc:       rateSvc,
	}
}

// DashboardSummary builds the dashboard for ownerID at the given instant.
func (s *ReportingService) DashboardSummary(ctx context.Context, ownerID string, now time.Time) (*dto.DashboardSummaryResponse, error) {
	obligations, err := s.obligationSvc.ListObligations(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list obligations for dashboard: %w", err)
	}

	paid, err := s.obligationSvc.IsPaidForCurrentPeriods(ctx, obligations, now)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paid status for dashboard: %w", err)
	}

	table, err := s.rateSvc.BuildRateTable(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate table for dashboard: %w", err)
	}

	summary := &dto.DashboardSummaryResponse{
		BaseCurrency: string(domain.BaseCurrency),
		Obligations:  make([]dto.ObligationSummary, 0, len(obligations)),
	}

	var totalDue, totalPaid, totalUnpaid int64
	warned := make(map[string]bool)

	for i := range obligations {
		ob := &obligations[i]

		outcome := fx.Convert(table, ob.Amount, domain.BaseCurrency)
		if outcome.Method == fx.MethodUnresolved {
			pair := string(ob.Amount.Currency) + ">" + string(domain.BaseCurrency)
			if !warned[pair] {
				warned[pair] = true
				summary.Warnings = append(summary.Warnings, dto.ConversionWarning{
					FromCurrency: string(ob.Amount.Currency),
					ToCurrency:   string(domain.BaseCurrency),
					Reason:       outcome.Reason,
				})
			}
		}

		periodStart, err := period.CurrentPeriodStart(ob.Cadence, now)
		if err != nil {
			return nil, fmt.Errorf("%w: obligation %s: %v", apperrors.ErrValidation, ob.ObligationID, err)
		}
		periodEnd, err := period.PeriodEnd(periodStart, ob.Cadence)
		if err != nil {
			return nil, fmt.Errorf("%w: obligation %s: %v", apperrors.ErrValidation, ob.ObligationID, err)
		}

		entry := dto.ObligationSummary{
			ObligationID: ob.ObligationID,
			Name:         ob.Name,
			Cadence:      string(ob.Cadence),
			Amount:       dto.ToMoneyResponse(ob.Amount),
			Converted:    dto.ToMoneyResponse(outcome.Amount),
			Method:       string(outcome.Method),
			Paid:         paid[ob.ObligationID],
			PeriodStart:  periodStart,
			PeriodEnd:    periodEnd,
			PeriodLabel:  period.DisplayText(periodStart, ob.Cadence),
		}
		for _, code := range outcome.Chain {
			entry.Chain = append(entry.Chain, string(code))
		}
		summary.Obligations = append(summary.Obligations, entry)

		totalDue += outcome.Amount.MinorUnits
		if entry.Paid {
			totalPaid += outcome.Amount.MinorUnits
		} else {
			totalUnpaid += outcome.Amount.MinorUnits
		}
	}

	summary.TotalDue = dto.ToMoneyResponse(domain.Money{MinorUnits: totalDue, Currency: domain.BaseCurrency})
	summary.TotalPaid = dto.ToMoneyResponse(domain.Money{MinorUnits: totalPaid, Currency: domain.BaseCurrency})
	summary.TotalUnpaid = dto.ToMoneyResponse(domain.Money{MinorUnits: totalUnpaid, Currency: domain.BaseCurrency})

	return summary, nil
}
