package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/budgetcr/budget_backend/internal/apperrors"
	"github.com/budgetcr/budget_backend/internal/core/domain"
	"github.com/budgetcr/budget_backend/internal/core/period"
	portsrepo "github.com/budgetcr/budget_backend/internal/core/ports/repositories"
	"github.com/budgetcr/budget_backend/internal/dto"
	"github.com/google/uuid"
)

// ObligationService provides obligation CRUD and the payment ledger. The
// ledger guarantees at most one payment instance per (obligation, period):
// marking is rejected with ErrAlreadyPaid on duplicates, unmarking is
// lenient. MarkPaid is a check-then-create sequence; the pgsql adapter backs
// it with a uniqueness constraint so concurrent marks cannot slip through.
type ObligationService struct {
	obligationRepo portsrepo.ObligationRepositoryFacade
	paymentRepo    portsrepo.PaymentInstanceRepositoryFacade
}

// NewObligationService creates a new ObligationService.
func NewObligationService(obligationRepo portsrepo.ObligationRepositoryFacade, paymentRepo portsrepo.PaymentInstanceRepositoryFacade) *ObligationService {
	return &ObligationService{
		obligationRepo: obligationRepo,
		paymentRepo:    paymentRepo,
	}
}

// CreateObligation creates a recurring obligation owned by creatorUserID.
func (s *ObligationService) CreateObligation(ctx context.Context, req dto.CreateObligationRequest, creatorUserID string) (*domain.Obligation, error) {
	cadence := domain.Cadence(req.Cadence)
	if !cadence.Valid() {
		return nil, fmt.Errorf("%w: unknown cadence %q", apperrors.ErrValidation, req.Cadence)
	}
	code := domain.CurrencyCode(req.CurrencyCode)
	if !domain.IsSupportedCurrency(code) {
		return nil, fmt.Errorf("%w: currency %q is not supported", apperrors.ErrValidation, req.CurrencyCode)
	}

	now := time.Now()
	obligation := domain.Obligation{
		ObligationID: uuid.NewString(),
		OwnerID:      creatorUserID,
		Name:         req.Name,
		Amount:       domain.NewMoney(req.Amount, code),
		Cadence:      cadence,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.obligationRepo.SaveObligation(ctx, obligation); err != nil {
		return nil, fmt.Errorf("failed to create obligation in service: %w", err)
	}
	return &obligation, nil
}

// GetObligation retrieves an obligation after checking ownership.
func (s *ObligationService) GetObligation(ctx context.Context, ownerID, obligationID string) (*domain.Obligation, error) {
	return s.findOwned(ctx, ownerID, obligationID)
}

// ListObligations returns all obligations owned by ownerID.
func (s *ObligationService) ListObligations(ctx context.Context, ownerID string) ([]domain.Obligation, error) {
	obligations, err := s.obligationRepo.ListObligationsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list obligations in service: %w", err)
	}
	if obligations == nil {
		return []domain.Obligation{}, nil
	}
	return obligations, nil
}

// UpdateObligation applies a partial update to an owned obligation.
func (s *ObligationService) UpdateObligation(ctx context.Context, ownerID, obligationID string, req dto.UpdateObligationRequest) (*domain.Obligation, error) {
	obligation, err := s.findOwned(ctx, ownerID, obligationID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		obligation.Name = *req.Name
	}
	if req.Cadence != nil {
		cadence := domain.Cadence(*req.Cadence)
		if !cadence.Valid() {
			return nil, fmt.Errorf("%w: unknown cadence %q", apperrors.ErrValidation, *req.Cadence)
		}
		obligation.Cadence = cadence
	}
	if req.CurrencyCode != nil {
		code := domain.CurrencyCode(*req.CurrencyCode)
		if !domain.IsSupportedCurrency(code) {
			return nil, fmt.Errorf("%w: currency %q is not supported", apperrors.ErrValidation, *req.CurrencyCode)
		}
		obligation.Amount = domain.Money{MinorUnits: obligation.Amount.MinorUnits, Currency: code}
	}
	if req.Amount != nil {
		obligation.Amount = domain.NewMoney(*req.Amount, obligation.Amount.Currency)
	}
	obligation.LastUpdatedAt = time.Now()
	obligation.LastUpdatedBy = ownerID

	if err := s.obligationRepo.UpdateObligation(ctx, *obligation); err != nil {
		return nil, fmt.Errorf("failed to update obligation in service: %w", err)
	}
	return obligation, nil
}

// DeleteObligation removes an owned obligation. Its payment instances go
// with it via the schema's cascade.
func (s *ObligationService) DeleteObligation(ctx context.Context, ownerID, obligationID string) error {
	if _, err := s.findOwned(ctx, ownerID, obligationID); err != nil {
		return err
	}
	if err := s.obligationRepo.DeleteObligation(ctx, obligationID); err != nil {
		return fmt.Errorf("failed to delete obligation in service: %w", err)
	}
	return nil
}

// MarkPaid records a payment for the period enclosing now. The existence
// check makes duplicate marks fail with ErrAlreadyPaid rather than silently
// merging; the repository's uniqueness mapping covers the concurrent case.
func (s *ObligationService) MarkPaid(ctx context.Context, ownerID, obligationID string, amount *domain.Money, now time.Time) (*domain.PaymentInstance, error) {
	obligation, err := s.findOwned(ctx, ownerID, obligationID)
	if err != nil {
		return nil, err
	}

	periodStart, err := period.CurrentPeriodStart(obligation.Cadence, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	existing, err := s.paymentRepo.FindPaymentInstance(ctx, obligationID, periodStart)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing payment: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: obligation %s, period starting %s", apperrors.ErrAlreadyPaid, obligationID, periodStart.Format(time.DateOnly))
	}

	paid := obligation.Amount
	if amount != nil {
		paid = *amount
	}

	instance := domain.PaymentInstance{
		PaymentInstanceID: uuid.NewString(),
		ObligationID:      obligationID,
		PeriodStart:       periodStart,
		Amount:            paid,
		PaidAt:            now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.paymentRepo.SavePaymentInstance(ctx, instance); err != nil {
		// A concurrent mark may have won the race between check and create.
		if errors.Is(err, apperrors.ErrAlreadyPaid) {
			return nil, fmt.Errorf("%w: obligation %s, period starting %s", apperrors.ErrAlreadyPaid, obligationID, periodStart.Format(time.DateOnly))
		}
		return nil, fmt.Errorf("failed to save payment instance: %w", err)
	}
	return &instance, nil
}

// UnmarkPaid deletes any payment instances for the period enclosing now.
// Deleting zero instances is not an error.
func (s *ObligationService) UnmarkPaid(ctx context.Context, ownerID, obligationID string, now time.Time) error {
	obligation, err := s.findOwned(ctx, ownerID, obligationID)
	if err != nil {
		return err
	}

	periodStart, err := period.CurrentPeriodStart(obligation.Cadence, now)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if _, err := s.paymentRepo.DeletePaymentInstances(ctx, obligationID, periodStart); err != nil {
		return fmt.Errorf("failed to delete payment instances: %w", err)
	}
	return nil
}

// IsPaidForCurrentPeriod reports whether the obligation has a payment
// instance for the period enclosing now.
func (s *ObligationService) IsPaidForCurrentPeriod(ctx context.Context, obligationID string, now time.Time) (bool, error) {
	obligation, err := s.obligationRepo.FindObligationByID(ctx, obligationID)
	if err != nil {
		return false, fmt.Errorf("failed to load obligation: %w", err)
	}

	periodStart, err := period.CurrentPeriodStart(obligation.Cadence, now)
	if err != nil {
		return false, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	_, err = s.paymentRepo.FindPaymentInstance(ctx, obligationID, periodStart)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check payment instance: %w", err)
	}
	return true, nil
}

// IsPaidForCurrentPeriods computes a per-obligation period start (cadences
// differ) and answers all paid checks from a single instance fetch.
func (s *ObligationService) IsPaidForCurrentPeriods(ctx context.Context, obligations []domain.Obligation, now time.Time) (map[string]bool, error) {
	result := make(map[string]bool, len(obligations))
	if len(obligations) == 0 {
		return result, nil
	}

	starts := make(map[string]time.Time, len(obligations))
	ids := make([]string, 0, len(obligations))
	var earliest time.Time
	for _, ob := range obligations {
		start, err := period.CurrentPeriodStart(ob.Cadence, now)
		if err != nil {
			return nil, fmt.Errorf("%w: obligation %s: %v", apperrors.ErrValidation, ob.ObligationID, err)
		}
		starts[ob.ObligationID] = start
		ids = append(ids, ob.ObligationID)
		result[ob.ObligationID] = false
		if earliest.IsZero() || start.Before(earliest) {
			earliest = start
		}
	}

	instances, err := s.paymentRepo.ListPaymentInstancesSince(ctx, ids, earliest)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment instances: %w", err)
	}

	for _, instance := range instances {
		if start, ok := starts[instance.ObligationID]; ok && start.Equal(instance.PeriodStart) {
			result[instance.ObligationID] = true
		}
	}
	return result, nil
}

func (s *ObligationService) findOwned(ctx context.Context, ownerID, obligationID string) (*domain.Obligation, error) {
	obligation, err := s.obligationRepo.FindObligationByID(ctx, obligationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: obligation %s", apperrors.ErrNotFound, obligationID)
		}
		return nil, fmt.Errorf("failed to load obligation: %w", err)
	}
	if obligation.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: obligation %s", apperrors.ErrForbidden, obligationID)
	}
	return obligation, nil
}
