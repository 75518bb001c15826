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

// PgxObligationRepository implements the obligation repository using pgxpool.
// Amounts are stored as integer minor units alongside their currency code.
type PgxObligationRepository struct {
	db *pgxpool.Pool
}

// NewObligationRepository creates a new PgxObligationRepository.
func NewObligationRepository(db *pgxpool.Pool) *PgxObligationRepository {
	return &PgxObligationRepository{db: db}
}

var _ portsrepo.ObligationRepositoryFacade = (*PgxObligationRepository)(nil)

// SaveObligation inserts a new obligation into the database.
func (r *PgxObligationRepository) SaveObligation(ctx context.Context, obligation domain.Obligation) error {
	query := `
		INSERT INTO obligations (
			obligation_id, owner_id, name, amount_minor_units, currency_code, cadence,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		obligation.ObligationID, obligation.OwnerID, obligation.Name,
		obligation.Amount.MinorUnits, obligation.Amount.Currency, obligation.Cadence,
		obligation.CreatedAt, obligation.CreatedBy, obligation.LastUpdatedAt, obligation.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("error inserting obligation: %w", err)
	}
	return nil
}

// FindObligationByID retrieves an obligation by its ID.
func (r *PgxObligationRepository) FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	query := `
		SELECT obligation_id, owner_id, name, amount_minor_units, currency_code, cadence,
			created_at, created_by, last_updated_at, last_updated_by
		FROM obligations
		WHERE obligation_id = $1
	`
	obligation := &domain.Obligation{}
	err := r.db.QueryRow(ctx, query, obligationID).Scan(
		&obligation.ObligationID, &obligation.OwnerID, &obligation.Name,
		&obligation.Amount.MinorUnits, &obligation.Amount.Currency, &obligation.Cadence,
		&obligation.CreatedAt, &obligation.CreatedBy, &obligation.LastUpdatedAt, &obligation.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding obligation: %w", err)
	}
	return obligation, nil
}

// ListObligationsByOwner retrieves all obligations owned by ownerID.
func (r *PgxObligationRepository) ListObligationsByOwner(ctx context.Context, ownerID string) ([]domain.Obligation, error) {
	query := `
		SELECT obligation_id, owner_id, name, amount_minor_units, currency_code, cadence,
			created_at, created_by, last_updated_at, last_updated_by
		FROM obligations
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error querying obligations: %w", err)
	}
	defer rows.Close()

	obligations, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Obligation, error) {
		var obligation domain.Obligation
		err := row.Scan(
			&obligation.ObligationID, &obligation.OwnerID, &obligation.Name,
			&obligation.Amount.MinorUnits, &obligation.Amount.Currency, &obligation.Cadence,
			&obligation.CreatedAt, &obligation.CreatedBy, &obligation.LastUpdatedAt, &obligation.LastUpdatedBy,
		)
		return obligation, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning obligations: %w", err)
	}
	return obligations, nil
}

// UpdateObligation persists changes to an existing obligation.
func (r *PgxObligationRepository) UpdateObligation(ctx context.Context, obligation domain.Obligation) error {
	query := `
		UPDATE obligations
		SET name = $2, amount_minor_units = $3, currency_code = $4, cadence = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE obligation_id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query,
		obligation.ObligationID, obligation.Name,
		obligation.Amount.MinorUnits, obligation.Amount.Currency, obligation.Cadence,
		obligation.LastUpdatedAt, obligation.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("error updating obligation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteObligation removes an obligation. Its payment instances follow via
// the foreign key cascade.
func (r *PgxObligationRepository) DeleteObligation(ctx context.Context, obligationID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM obligations WHERE obligation_id = $1`, obligationID)
	if err != nil {
		return fmt.Errorf("error deleting obligation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
