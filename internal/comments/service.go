package comments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mickaelbalensi/ProductManager/internal/auth"
	"github.com/mickaelbalensi/ProductManager/internal/shared"
	"github.com/mickaelbalensi/ProductManager/internal/tasks"
)

const authorForeignKey = "comments_author_id_fkey"

var (
	// ErrTaskNotFound is returned when commenting on a missing task.
	ErrTaskNotFound = shared.NewError(shared.ErrNotFound, "Task not found")
	// ErrAuthorNotFound is returned when the author id does not resolve to a user.
	ErrAuthorNotFound = shared.NewError(shared.ErrNotFound, "Author user not found")
)

// TaskLookup loads tasks by id.
type TaskLookup interface {
	Get(ctx context.Context, id uuid.UUID) (tasks.Task, error)
}

// AuthorLookup loads users by id.
type AuthorLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (auth.User, error)
}

// Service wraps comment business rules.
type Service struct {
	repo        Repository
	tasks       TaskLookup
	authors     AuthorLookup
	invalidator tasks.Invalidator
}

// NewService constructs a Service. invalidator may be nil.
func NewService(repo Repository, taskLookup TaskLookup, authors AuthorLookup, invalidator tasks.Invalidator) *Service {
	return &Service{repo: repo, tasks: taskLookup, authors: authors, invalidator: invalidator}
}

// Create adds a comment to taskID. The author is req.AuthorID when given,
// otherwise the requester.
func (s *Service) Create(ctx context.Context, requester auth.Identity, taskID uuid.UUID, req CreateRequest) (Comment, error) {
	task, err := s.task(ctx, taskID)
	if err != nil {
		return Comment{}, err
	}

	authorID := requester.ID
	if req.AuthorID != "" {
		authorID, err = uuid.Parse(req.AuthorID)
		if err != nil {
			return Comment{}, ErrAuthorNotFound
		}
	}
	if _, err := s.authors.FindByID(ctx, authorID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Comment{}, ErrAuthorNotFound
		}
		return Comment{}, fmt.Errorf("comments: load author: %w", err)
	}

	comment, err := s.repo.Create(ctx, NewComment{TaskID: task.ID, AuthorID: authorID, Content: req.Content})
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// Task or author was deleted after the lookups above.
			if shared.ViolatedConstraint(err) == authorForeignKey {
				return Comment{}, ErrAuthorNotFound
			}
			return Comment{}, ErrTaskNotFound
		}
		return Comment{}, fmt.Errorf("comments: create: %w", err)
	}
	comment.Task = &TaskRef{ID: task.ID, Title: task.Title}

	if s.invalidator != nil {
		s.invalidator.InvalidateProject(ctx, task.ProjectID)
	}
	return comment, nil
}

// List returns the comments of taskID in chronological order.
func (s *Service) List(ctx context.Context, taskID uuid.UUID) ([]Comment, error) {
	if _, err := s.task(ctx, taskID); err != nil {
		return nil, err
	}
	out, err := s.repo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("comments: list: %w", err)
	}
	return out, nil
}

func (s *Service) task(ctx context.Context, id uuid.UUID) (tasks.Task, error) {
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return tasks.Task{}, ErrTaskNotFound
		}
		return tasks.Task{}, fmt.Errorf("comments: load task: %w", err)
	}
	return task, nil
}
