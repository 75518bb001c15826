package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/budgetcr/budget_backend/internal/apperrors"
	"github.com/budgetcr/budget_backend/internal/core/domain"
	portsrepo "github.com/budgetcr/budget_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUserRepository implements the user repository using pgxpool.
type PgxUserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new PgxUserRepository.
func NewUserRepository(db *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{db: db}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

// SaveUser inserts a new user. A username collision maps to ErrDuplicate.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (
			user_id, username, name, hashed_password,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		user.UserID, user.Username, user.Name, user.HashedPassword,
		user.CreatedAt, user.CreatedBy, user.LastUpdatedAt, user.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}

// FindUserByID retrieves a user by their ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, username, name, hashed_password,
			created_at, created_by, last_updated_at, last_updated_by
		FROM users
		WHERE user_id = $1
	`
	return r.scanUser(r.db.QueryRow(ctx, query, userID))
}

// FindUserByUsername retrieves a user by their username.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT user_id, username, name, hashed_password,
			created_at, created_by, last_updated_at, last_updated_by
		FROM users
		WHERE username = $1
	`
	return r.scanUser(r.db.QueryRow(ctx, query, username))
}

func (r *PgxUserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.UserID, &user.Username, &user.Name, &user.HashedPassword,
		&user.CreatedAt, &user.CreatedBy, &user.LastUpdatedAt, &user.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	return user, nil
}
