package projects

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mickaelbalensi/ProductManager/internal/platform/db"
	"github.com/mickaelbalensi/ProductManager/internal/shared"
)

// Repository defines persistence operations for projects.
type Repository interface {
	Create(ctx context.Context, input NewProject) (Project, error)
	Detail(ctx context.Context, id uuid.UUID) (Detail, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Create inserts a project. Duplicate (owner, name) yields shared.ErrDuplicate.
func (r *PGRepository) Create(ctx context.Context, input NewProject) (Project, error) {
	var p Project
	err := r.pool.QueryRow(ctx, `
INSERT INTO projects (id, name, description, owner_id)
VALUES ($1, $2, $3, $4)
RETURNING id, name, description, owner_id, created_at`,
		uuid.New(), input.Name, input.Description, input.OwnerID,
	).Scan(&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.CreatedAt)
	if err != nil {
		return Project{}, shared.TranslatePgError(err)
	}
	return p, nil
}

// Exists reports whether a project with id exists.
func (r *PGRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("projects: exists: %w", err)
	}
	return exists, nil
}

// Detail loads a project with owner, tasks and comments from one snapshot.
func (r *PGRepository) Detail(ctx context.Context, id uuid.UUID) (Detail, error) {
	var d Detail
	err := db.WithReadTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
SELECT p.id, p.name, p.description, p.owner_id, p.created_at,
       u.id, u.email, u.first_name, u.family_name
FROM projects p
JOIN users u ON u.id = p.owner_id
WHERE p.id = $1`, id).Scan(
			&d.ID, &d.Name, &d.Description, &d.OwnerID, &d.CreatedAt,
			&d.Owner.ID, &d.Owner.Email, &d.Owner.FirstName, &d.Owner.FamilyName,
		)
		if err != nil {
			return shared.TranslatePgError(err)
		}

		tasks, err := loadTasks(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := attachComments(ctx, tx, id, tasks); err != nil {
			return err
		}
		d.Tasks = tasks
		return nil
	})
	if err != nil {
		return Detail{}, err
	}
	return d, nil
}

func loadTasks(ctx context.Context, tx pgx.Tx, projectID uuid.UUID) ([]TaskView, error) {
	rows, err := tx.Query(ctx, `
SELECT id, project_id, title, description, status, created_at, updated_at
FROM tasks
WHERE project_id = $1
ORDER BY created_at, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("projects: list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]TaskView, 0)
	for rows.Next() {
		var t TaskView
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("projects: scan task: %w", err)
		}
		t.Comments = make([]CommentView, 0)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func attachComments(ctx context.Context, tx pgx.Tx, projectID uuid.UUID, tasks []TaskView) error {
	if len(tasks) == 0 {
		return nil
	}
	index := make(map[uuid.UUID]int, len(tasks))
	for i, t := range tasks {
		index[t.ID] = i
	}

	rows, err := tx.Query(ctx, `
SELECT c.id, c.task_id, c.author_id, c.content, c.created_at
FROM comments c
JOIN tasks t ON t.id = c.task_id
WHERE t.project_id = $1
ORDER BY c.created_at, c.id`, projectID)
	if err != nil {
		return fmt.Errorf("projects: list comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c CommentView
		if err := rows.Scan(&c.ID, &c.TaskID, &c.AuthorID, &c.Content, &c.CreatedAt); err != nil {
			return fmt.Errorf("projects: scan comment: %w", err)
		}
		if i, ok := index[c.TaskID]; ok {
			tasks[i].Comments = append(tasks[i].Comments, c)
		}
	}
	return rows.Err()
}

var _ Repository = (*PGRepository)(nil)
