package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/budgetcr/budget_backend/internal/apperrors"
	"github.com/budgetcr/budget_backend/internal/core/domain"
	portsrepo "github.com/budgetcr/budget_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPaymentInstanceRepository implements the payment instance repository
// using pgxpool. The UNIQUE (obligation_id, period_start) constraint is the
// authority on one-payment-per-period; its violation surfaces as
// apperrors.ErrAlreadyPaid.
type PgxPaymentInstanceRepository struct {
	db *pgxpool.Pool
}

// NewPaymentInstanceRepository creates a new PgxPaymentInstanceRepository.
func NewPaymentInstanceRepository(db *pgxpool.Pool) *PgxPaymentInstanceRepository {
	return &PgxPaymentInstanceRepository{db: db}
}

var _ portsrepo.PaymentInstanceRepositoryFacade = (*PgxPaymentInstanceRepository)(nil)

// SavePaymentInstance inserts a new payment instance.
func (r *PgxPaymentInstanceRepository) SavePaymentInstance(ctx context.Context, instance domain.PaymentInstance) error {
	query := `
		INSERT INTO payment_instances (
			payment_instance_id, obligation_id, period_start, amount_minor_units, currency_code,
			paid_at, created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		instance.PaymentInstanceID, instance.ObligationID, instance.PeriodStart,
		instance.Amount.MinorUnits, instance.Amount.Currency,
		instance.PaidAt, instance.CreatedAt, instance.CreatedBy, instance.LastUpdatedAt, instance.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrAlreadyPaid
		}
		return fmt.Errorf("error inserting payment instance: %w", err)
	}
	return nil
}

// FindPaymentInstance retrieves the instance at an exact (obligation, period start).
func (r *PgxPaymentInstanceRepository) FindPaymentInstance(ctx context.Context, obligationID string, periodStart time.Time) (*domain.PaymentInstance, error) {
	query := `
		SELECT payment_instance_id, obligation_id, period_start, amount_minor_units, currency_code,
			paid_at, created_at, created_by, last_updated_at, last_updated_by
		FROM payment_instances
		WHERE obligation_id = $1 AND period_start = $2
	`
	instance := &domain.PaymentInstance{}
	err := r.db.QueryRow(ctx, query, obligationID, periodStart).Scan(
		&instance.PaymentInstanceID, &instance.ObligationID, &instance.PeriodStart,
		&instance.Amount.MinorUnits, &instance.Amount.Currency,
		&instance.PaidAt, &instance.CreatedAt, &instance.CreatedBy, &instance.LastUpdatedAt, &instance.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding payment instance: %w", err)
	}
	return instance, nil
}

// ListPaymentInstancesSince returns all instances for the given obligations
// with a period start at or after earliest.
func (r *PgxPaymentInstanceRepository) ListPaymentInstancesSince(ctx context.Context, obligationIDs []string, earliest time.Time) ([]domain.PaymentInstance, error) {
	if len(obligationIDs) == 0 {
		return []domain.PaymentInstance{}, nil
	}
	query := `
		SELECT payment_instance_id, obligation_id, period_start, amount_minor_units, currency_code,
			paid_at, created_at, created_by, last_updated_at, last_updated_by
		FROM payment_instances
		WHERE obligation_id = ANY($1) AND period_start >= $2
	`
	rows, err := r.db.Query(ctx, query, obligationIDs, earliest)
	if err != nil {
		return nil, fmt.Errorf("error querying payment instances: %w", err)
	}
	defer rows.Close()

	instances, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PaymentInstance, error) {
		var instance domain.PaymentInstance
		err := row.Scan(
			&instance.PaymentInstanceID, &instance.ObligationID, &instance.PeriodStart,
			&instance.Amount.MinorUnits, &instance.Amount.Currency,
			&instance.PaidAt, &instance.CreatedAt, &instance.CreatedBy, &instance.LastUpdatedAt, &instance.LastUpdatedBy,
		)
		return instance, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning payment instances: %w", err)
	}
	return instances, nil
}

// DeletePaymentInstances removes any instances at the given period and returns
// the number deleted. Zero rows is not an error.
func (r *PgxPaymentInstanceRepository) DeletePaymentInstances(ctx context.Context, obligationID string, periodStart time.Time) (int64, error) {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM payment_instances WHERE obligation_id = $1 AND period_start = $2`,
		obligationID, periodStart,
	)
	if err != nil {
		return 0, fmt.Errorf("error deleting payment instances: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
