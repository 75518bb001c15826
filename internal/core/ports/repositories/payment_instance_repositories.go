package repositories

import (
	"context"
	"time"

	"github.com/budgetcr/budget_backend/internal/core/domain"
)

// PaymentInstanceReader defines read operations for payment instances.
type PaymentInstanceReader interface {
	// FindPaymentInstance retrieves the instance at an exact
	// (obligationID, periodStart), or apperrors.ErrNotFound.
	FindPaymentInstance(ctx context.Context, obligationID string, periodStart time.Time) (*domain.PaymentInstance, error)

	// ListPaymentInstancesSince returns all instances for the given
	// obligations with a period start at or after earliest, so batch paid
	// checks need a single query.
	ListPaymentInstancesSince(ctx context.Context, obligationIDs []string, earliest time.Time) ([]domain.PaymentInstance, error)
}

// PaymentInstanceWriter defines write operations for payment instances.
type PaymentInstanceWriter interface {
	// SavePaymentInstance persists a new instance. Implementations must map a
	// (obligation_id, period_start) uniqueness violation to
	// apperrors.ErrAlreadyPaid, closing the check-then-create race.
	SavePaymentInstance(ctx context.Context, instance domain.PaymentInstance) error

	// DeletePaymentInstances removes any instances at the given period and
	// returns the number deleted. Deleting zero rows is not an error.
	DeletePaymentInstances(ctx context.Context, obligationID string, periodStart time.Time) (int64, error)
}

// PaymentInstanceRepositoryFacade combines all payment instance repository interfaces.
type PaymentInstanceRepositoryFacade interface {
	PaymentInstanceReader
	PaymentInstanceWriter
}
