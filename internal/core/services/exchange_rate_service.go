package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/budgetcr/budget_backend/internal/apperrors"
	"github.com/budgetcr/budget_backend/internal/core/domain"
	"github.com/budgetcr/budget_backend/internal/core/fx"
	portsrepo "github.com/budgetcr/budget_backend/internal/core/ports/repositories"
	portssvc "github.com/budgetcr/budget_backend/internal/core/ports/services"
	"github.com/budgetcr/budget_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeRateService provides business logic for exchange rates and
// currency conversion.
type ExchangeRateService struct {
	rateRepo        portsrepo.ExchangeRateRepositoryFacade
	currencyService portssvc.CurrencySvcFacade
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyService portssvc.CurrencySvcFacade) *ExchangeRateService {
	return &ExchangeRateService{
		rateRepo:        rateRepo,
		currencyService: currencyService,
	}
}

// CreateExchangeRate handles the creation of a new exchange rate.
func (s *ExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if req.FromCurrencyCode == req.ToCurrencyCode {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}

	rateType := domain.RateType(req.RateType)
	if !rateType.Valid() {
		return nil, fmt.Errorf("%w: unknown rate type %q", apperrors.ErrValidation, req.RateType)
	}

	if _, err := s.currencyService.GetCurrencyByCode(ctx, req.FromCurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: 'from' currency code %q not found", apperrors.ErrValidation, req.FromCurrencyCode)
		}
		return nil, fmt.Errorf("failed to validate 'from' currency %q: %w", req.FromCurrencyCode, err)
	}
	if _, err := s.currencyService.GetCurrencyByCode(ctx, req.ToCurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: 'to' currency code %q not found", apperrors.ErrValidation, req.ToCurrencyCode)
		}
		return nil, fmt.Errorf("failed to validate 'to' currency %q: %w", req.ToCurrencyCode, err)
	}

	ownerID := creatorUserID
	if req.Global {
		ownerID = ""
	}

	now := time.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: domain.CurrencyCode(req.FromCurrencyCode),
		ToCurrencyCode:   domain.CurrencyCode(req.ToCurrencyCode),
		RateType:         rateType,
		Rate:             req.Rate,
		DateEffective:    req.DateEffective,
		OwnerID:          ownerID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to create exchange rate in service: %w", err)
	}

	return &rate, nil
}

// GetLatestExchangeRate retrieves the most recent rate for a currency pair,
// preferring rates scoped to ownerID over global ones. An empty rateType
// matches any type.
func (s *ExchangeRateService) GetLatestExchangeRate(ctx context.Context, fromCode, toCode, rateType, ownerID string) (*domain.ExchangeRate, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if !domain.IsSupportedCurrency(domain.CurrencyCode(fromCode)) || !domain.IsSupportedCurrency(domain.CurrencyCode(toCode)) {
		return nil, fmt.Errorf("%w: currency pair %s/%s is not supported", apperrors.ErrValidation, fromCode, toCode)
	}
	rt := domain.RateType(rateType)
	if !rt.Valid() {
		return nil, fmt.Errorf("%w: unknown rate type %q", apperrors.ErrValidation, rateType)
	}

	rate, err := s.rateRepo.FindLatestExchangeRate(ctx, domain.CurrencyCode(fromCode), domain.CurrencyCode(toCode), rt, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	return rate, nil
}

// ListExchangeRates returns the rate snapshot visible to ownerID.
func (s *ExchangeRateService) ListExchangeRates(ctx context.Context, ownerID string) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListRatesForOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates in service: %w", err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}

// BuildRateTable fetches the snapshot visible to ownerID and builds the
// deduplicated lookup table. The repository returns rows owner-first and
// most recent first, so the builder's first-write-wins rule gives owner
// rates precedence over global ones.
func (s *ExchangeRateService) BuildRateTable(ctx context.Context, ownerID string) (fx.RateTable, error) {
	rates, err := s.rateRepo.ListRatesForOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate snapshot: %w", err)
	}
	return fx.BuildRateTable(rates), nil
}

// ConvertAmount resolves amount into toCurrency using the rates visible to
// ownerID. Resolution failure is reported inside the outcome, not as an
// error, so aggregate computations can proceed with the original amount.
func (s *ExchangeRateService) ConvertAmount(ctx context.Context, ownerID string, amount domain.Money, toCurrency domain.CurrencyCode) (fx.ConversionOutcome, error) {
	if !domain.IsSupportedCurrency(amount.Currency) || !domain.IsSupportedCurrency(toCurrency) {
		return fx.ConversionOutcome{}, fmt.Errorf("%w: currency pair %s/%s is not supported", apperrors.ErrValidation, amount.Currency, toCurrency)
	}
	table, err := s.BuildRateTable(ctx, ownerID)
	if err != nil {
		return fx.ConversionOutcome{}, err
	}
	return fx.Convert(table, amount, toCurrency), nil
}
