package repositories

import (
	"context"

	"github.com/budgetcr/budget_backend/internal/core/domain"
)

// ObligationReader defines read operations for obligations.
type ObligationReader interface {
	FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error)
	ListObligationsByOwner(ctx context.Context, ownerID string) ([]domain.Obligation, error)
}

// ObligationWriter defines write operations for obligations.
type ObligationWriter interface {
	SaveObligation(ctx context.Context, obligation domain.Obligation) error
	UpdateObligation(ctx context.Context, obligation domain.Obligation) error
	DeleteObligation(ctx context.Context, obligationID string) error
}

// ObligationRepositoryFacade combines all obligation repository interfaces.
type ObligationRepositoryFacade interface {
	ObligationReader
	ObligationWriter
}
