package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mickaelbalensi/ProductManager/internal/shared"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	CreateUser(ctx context.Context, input NewUser) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id uuid.UUID) (User, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const userColumns = `id, email, first_name, family_name, password_hash, created_at`

// CreateUser inserts a user. A taken email yields shared.ErrDuplicate.
func (r *PGRepository) CreateUser(ctx context.Context, input NewUser) (User, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO users (id, email, first_name, family_name, password_hash)
VALUES ($1, $2, $3, $4, $5)
RETURNING `+userColumns,
		uuid.New(), input.Email, input.FirstName, input.FamilyName, input.PasswordHash)
	user, err := scanUser(row)
	if err != nil {
		return User{}, shared.TranslatePgError(err)
	}
	return user, nil
}

// FindByEmail fetches a user by email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	user, err := scanUser(row)
	if err != nil {
		return User{}, shared.TranslatePgError(err)
	}
	return user, nil
}

// FindByID fetches a user by id.
func (r *PGRepository) FindByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		return User{}, shared.TranslatePgError(err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.FamilyName, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

var _ Repository = (*PGRepository)(nil)
