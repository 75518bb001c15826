package services

import (
	"context"
	"time"

	"github.com/budgetcr/budget_backend/internal/core/domain"
	"github.com/budgetcr/budget_backend/internal/dto"
)

// ObligationLedgerSvc is the obligation ledger: it guarantees at most one
// payment instance per obligation per period and supports toggling.
type ObligationLedgerSvc interface {
	// MarkPaid records a payment for the period enclosing now. A nil amount
	// records the obligation's configured amount. Returns
	// apperrors.ErrAlreadyPaid if the period already has an instance.
	MarkPaid(ctx context.Context, ownerID, obligationID string, amount *domain.Money, now time.Time) (*domain.PaymentInstance, error)

	// UnmarkPaid deletes any payment instances for the period enclosing now.
	// Removing zero instances is still a success.
	UnmarkPaid(ctx context.Context, ownerID, obligationID string, now time.Time) error

	// IsPaidForCurrentPeriod reports whether the obligation has a payment
	// instance for the period enclosing now.
	IsPaidForCurrentPeriod(ctx context.Context, obligationID string, now time.Time) (bool, error)

	// IsPaidForCurrentPeriods answers the same question for many obligations
	// with a single instance fetch; cadences may differ per obligation.
	IsPaidForCurrentPeriods(ctx context.Context, obligations []domain.Obligation, now time.Time) (map[string]bool, error)
}

// ObligationSvcFacade combines obligation CRUD with the ledger operations.
type ObligationSvcFacade interface {
	ObligationLedgerSvc
	CreateObligation(ctx context.Context, req dto.CreateObligationRequest, creatorUserID string) (*domain.Obligation, error)
	GetObligation(ctx context.Context, ownerID, obligationID string) (*domain.Obligation, error)
	ListObligations(ctx context.Context, ownerID string) ([]domain.Obligation, error)
	UpdateObligation(ctx context.Context, ownerID, obligationID string, req dto.UpdateObligationRequest) (*domain.Obligation, error)
	DeleteObligation(ctx context.Context, ownerID, obligationID string) error
}
