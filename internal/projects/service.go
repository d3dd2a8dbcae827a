package projects

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mickaelbalensi/ProductManager/internal/auth"
	"github.com/mickaelbalensi/ProductManager/internal/shared"
)

var (
	// ErrProjectNotFound is returned when a project id does not exist.
	ErrProjectNotFound = shared.NewError(shared.ErrNotFound, "Project not found")
	// ErrOwnerNotFound is returned when the owning user does not exist.
	ErrOwnerNotFound = shared.NewError(shared.ErrNotFound, "Owner user not found")
	// ErrDuplicateName is returned when the owner already has a project with that name.
	ErrDuplicateName = shared.NewError(shared.ErrDuplicate, "A project with this name already exists for this user")
)

// OwnerLookup loads users by id.
type OwnerLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (auth.User, error)
}

// Service wraps project business rules.
type Service struct {
	repo   Repository
	owners OwnerLookup
	cache  *Cache
	logger *slog.Logger
}

// NewService constructs a Service. cache may be nil.
func NewService(repo Repository, owners OwnerLookup, cache *Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, owners: owners, cache: cache, logger: logger}
}

// Create stores a project owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req CreateRequest) (Project, error) {
	if _, err := s.owners.FindByID(ctx, ownerID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Project{}, ErrOwnerNotFound
		}
		return Project{}, fmt.Errorf("projects: load owner: %w", err)
	}

	project, err := s.repo.Create(ctx, NewProject{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     ownerID,
	})
	switch {
	case err == nil:
		return project, nil
	case errors.Is(err, shared.ErrDuplicate):
		return Project{}, ErrDuplicateName
	case errors.Is(err, shared.ErrNotFound):
		return Project{}, ErrOwnerNotFound
	default:
		return Project{}, fmt.Errorf("projects: create: %w", err)
	}
}

// Detail returns the project with owner, tasks and comments.
func (s *Service) Detail(ctx context.Context, id uuid.UUID) (Detail, error) {
	d, err := s.cache.Fetch(ctx, id, func(ctx context.Context) (Detail, error) {
		return s.repo.Detail(ctx, id)
	})
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Detail{}, ErrProjectNotFound
		}
		return Detail{}, fmt.Errorf("projects: detail: %w", err)
	}
	return d, nil
}

// ProjectExists reports whether project id exists.
func (s *Service) ProjectExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// InvalidateProject drops any cached detail of project id. Failures are
// logged; a stale entry expires with its TTL.
func (s *Service) InvalidateProject(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("invalidate project cache",
			slog.String("project_id", id.String()),
			slog.Any("error", err))
	}
}
