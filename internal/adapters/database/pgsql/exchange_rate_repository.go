package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/budgetcr/budget_backend/internal/apperrors"
	"github.com/budgetcr/budget_backend/internal/core/domain"
	portsrepo "github.com/budgetcr/budget_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExchangeRateRepository implements the exchange rate repository using pgxpool.
type PgxExchangeRateRepository struct {
	db *pgxpool.Pool
}

// NewExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{db: db}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

// SaveExchangeRate inserts a new exchange rate into the database.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (
			exchange_rate_id, from_currency_code, to_currency_code, rate_type, rate,
			date_effective, owner_id, created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.Exec(ctx, query,
		rate.ExchangeRateID, rate.FromCurrencyCode, rate.ToCurrencyCode, rate.RateType, rate.Rate,
		rate.DateEffective, rate.OwnerID, rate.CreatedAt, rate.CreatedBy, rate.LastUpdatedAt, rate.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("error inserting exchange rate: %w", err)
	}
	return nil
}

// FindLatestExchangeRate retrieves the most recent rate for the pair, with
// owner-scoped rows outranking global ones. An empty rateType matches any type.
func (r *PgxExchangeRateRepository) FindLatestExchangeRate(ctx context.Context, from, to domain.CurrencyCode, rateType domain.RateType, ownerID string) (*domain.ExchangeRate, error) {
	query := `
		SELECT
			exchange_rate_id, from_currency_code, to_currency_code, rate_type, rate,
			date_effective, owner_id, created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2
			AND ($3 = '' OR rate_type = $3)
			AND (owner_id = $4 OR owner_id = '')
		ORDER BY (owner_id = $4) DESC, date_effective DESC, created_at DESC
		LIMIT 1
	`
	rate := &domain.ExchangeRate{}
	err := r.db.QueryRow(ctx, query, from, to, rateType, ownerID).Scan(
		&rate.ExchangeRateID, &rate.FromCurrencyCode, &rate.ToCurrencyCode, &rate.RateType, &rate.Rate,
		&rate.DateEffective, &rate.OwnerID, &rate.CreatedAt, &rate.CreatedBy, &rate.LastUpdatedAt, &rate.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding exchange rate: %w", err)
	}
	return rate, nil
}

// ListRatesForOwner returns the snapshot visible to ownerID: owner-scoped rows
// first, then global, most recent effective date first within each group. The
// table builder keeps the first rate per key, so this ordering decides
// precedence.
func (r *PgxExchangeRateRepository) ListRatesForOwner(ctx context.Context, ownerID string) ([]domain.ExchangeRate, error) {
	query := `
		SELECT
			exchange_rate_id, from_currency_code, to_currency_code, rate_type, rate,
			date_effective, owner_id, created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		WHERE owner_id = $1 OR owner_id = ''
		ORDER BY (owner_id = $1) DESC, date_effective DESC, created_at DESC
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error querying exchange rates: %w", err)
	}
	defer rows.Close()

	rates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ExchangeRate, error) {
		var rate domain.ExchangeRate
		err := row.Scan(
			&rate.ExchangeRateID, &rate.FromCurrencyCode, &rate.ToCurrencyCode, &rate.RateType, &rate.Rate,
			&rate.DateEffective, &rate.OwnerID, &rate.CreatedAt, &rate.CreatedBy, &rate.LastUpdatedAt, &rate.LastUpdatedBy,
		)
		return rate, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning exchange rates: %w", err)
	}
	return rates, nil
}
