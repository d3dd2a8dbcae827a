package comments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mickaelbalensi/ProductManager/internal/shared"
)

// Repository defines persistence operations for comments.
type Repository interface {
	Create(ctx context.Context, input NewComment) (Comment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]Comment, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Create inserts a comment and returns it joined with its author.
func (r *PGRepository) Create(ctx context.Context, input NewComment) (Comment, error) {
	row := r.pool.QueryRow(ctx, `
WITH c AS (
    INSERT INTO comments (id, task_id, author_id, content)
    VALUES ($1, $2, $3, $4)
    RETURNING id, task_id, author_id, content, created_at
)
SELECT c.id, c.task_id, c.author_id, c.content, c.created_at,
       u.id, u.email, u.first_name, u.family_name
FROM c
JOIN users u ON u.id = c.author_id`,
		uuid.New(), input.TaskID, input.AuthorID, input.Content)
	c, err := scanComment(row)
	if err != nil {
		return Comment{}, shared.TranslatePgError(err)
	}
	return c, nil
}

// ListByTask returns the comments of a task, oldest first.
func (r *PGRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]Comment, error) {
	rows, err := r.pool.Query(ctx, `
SELECT c.id, c.task_id, c.author_id, c.content, c.created_at,
       u.id, u.email, u.first_name, u.family_name
FROM comments c
JOIN users u ON u.id = c.author_id
WHERE c.task_id = $1
ORDER BY c.created_at, c.id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("comments: list: %w", err)
	}
	defer rows.Close()

	out := make([]Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("comments: scan: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanComment(row pgx.Row) (Comment, error) {
	var c Comment
	err := row.Scan(&c.ID, &c.TaskID, &c.AuthorID, &c.Content, &c.CreatedAt,
		&c.Author.ID, &c.Author.Email, &c.Author.FirstName, &c.Author.FamilyName)
	return c, err
}

var _ Repository = (*PGRepository)(nil)
