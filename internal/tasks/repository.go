package tasks

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mickaelbalensi/ProductManager/internal/shared"
)

// Repository defines persistence operations for tasks.
type Repository interface {
	Create(ctx context.Context, input NewTask) (Task, error)
	Get(ctx context.Context, id uuid.UUID) (Task, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (Task, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const taskColumns = `id, project_id, title, description, status, created_at, updated_at`

// Create inserts a task. Duplicate (project, title) yields shared.ErrDuplicate.
func (r *PGRepository) Create(ctx context.Context, input NewTask) (Task, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO tasks (id, project_id, title, description, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING `+taskColumns,
		uuid.New(), input.ProjectID, input.Title, input.Description, string(input.Status))
	return scanTask(row)
}

// Get fetches a task by id.
func (r *PGRepository) Get(ctx context.Context, id uuid.UUID) (Task, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	return scanTask(row)
}

// UpdateStatus sets the status of a task and bumps updated_at.
func (r *PGRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (Task, error) {
	row := r.pool.QueryRow(ctx, `
UPDATE tasks SET status = $2, updated_at = NOW()
WHERE id = $1
RETURNING `+taskColumns, id, string(status))
	return scanTask(row)
}

func scanTask(row pgx.Row) (Task, error) {
	var (
		t      Task
		status string
	)
	if err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return Task{}, shared.TranslatePgError(err)
	}
	t.Status = Status(status)
	return t, nil
}

var _ Repository = (*PGRepository)(nil)
