package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mickaelbalensi/ProductManager/internal/shared"
)

var (
	// ErrTaskNotFound is returned when a task id does not exist.
	ErrTaskNotFound = shared.NewError(shared.ErrNotFound, "Task not found")
	// ErrProjectNotFound is returned when creating a task in a missing project.
	ErrProjectNotFound = shared.NewError(shared.ErrNotFound, "Project not found")
	// ErrDuplicateTitle is returned when the project already has a task with that title.
	ErrDuplicateTitle = shared.NewError(shared.ErrDuplicate, "A task with same title already exists")
)

// ProjectLookup reports project existence.
type ProjectLookup interface {
	ProjectExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Invalidator drops cached views of a project.
type Invalidator interface {
	InvalidateProject(ctx context.Context, id uuid.UUID)
}

// Service wraps task business rules.
type Service struct {
	repo        Repository
	projects    ProjectLookup
	invalidator Invalidator
}

// NewService constructs a Service. invalidator may be nil.
func NewService(repo Repository, projects ProjectLookup, invalidator Invalidator) *Service {
	return &Service{repo: repo, projects: projects, invalidator: invalidator}
}

// Create adds a task to projectID. An empty status defaults to todo.
func (s *Service) Create(ctx context.Context, projectID uuid.UUID, req CreateRequest) (Task, error) {
	status := StatusTodo
	if req.Status != "" {
		parsed, err := ParseStatus(req.Status)
		if err != nil {
			return Task{}, err
		}
		status = parsed
	}

	exists, err := s.projects.ProjectExists(ctx, projectID)
	if err != nil {
		return Task{}, fmt.Errorf("tasks: check project: %w", err)
	}
	if !exists {
		return Task{}, ErrProjectNotFound
	}

	task, err := s.repo.Create(ctx, NewTask{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
	})
	switch {
	case err == nil:
	case errors.Is(err, shared.ErrDuplicate):
		return Task{}, ErrDuplicateTitle
	case errors.Is(err, shared.ErrNotFound):
		return Task{}, ErrProjectNotFound
	default:
		return Task{}, fmt.Errorf("tasks: create: %w", err)
	}

	s.invalidate(ctx, projectID)
	return task, nil
}

// Get returns task id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Task, error) {
	task, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Task{}, ErrTaskNotFound
		}
		return Task{}, fmt.Errorf("tasks: get: %w", err)
	}
	return task, nil
}

// UpdateStatus moves task id to raw status.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, raw string) (Task, error) {
	status, err := ParseStatus(raw)
	if err != nil {
		return Task{}, err
	}
	task, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Task{}, ErrTaskNotFound
		}
		return Task{}, fmt.Errorf("tasks: update status: %w", err)
	}
	s.invalidate(ctx, task.ProjectID)
	return task, nil
}

func (s *Service) invalidate(ctx context.Context, projectID uuid.UUID) {
	if s.invalidator != nil {
		s.invalidator.InvalidateProject(ctx, projectID)
	}
}
