package projects_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mickaelbalensi/ProductManager/internal/auth"
	"github.com/mickaelbalensi/ProductManager/internal/projects"
	"github.com/mickaelbalensi/ProductManager/internal/shared"
)

type memRepo struct {
	mu          sync.Mutex
	projects    map[uuid.UUID]projects.Project
	owners      map[uuid.UUID]auth.User
	detailCalls atomic.Int32
	err         error
}

func newMemRepo() *memRepo {
	return &memRepo{
		projects: make(map[uuid.UUID]projects.Project),
		owners:   make(map[uuid.UUID]auth.User),
	}
}

func (m *memRepo) addOwner(email string) auth.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := auth.User{ID: uuid.New(), Email: email, FirstName: "Ada", FamilyName: "Lovelace", PasswordHash: "hash"}
	m.owners[u.ID] = u
	return u
}

func (m *memRepo) FindByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.owners[id]
	if !ok {
		return auth.User{}, shared.ErrNotFound
	}
	return u, nil
}

func (m *memRepo) Create(ctx context.Context, input projects.NewProject) (projects.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return projects.Project{}, m.err
	}
	for _, p := range m.projects {
		if p.OwnerID == input.OwnerID && p.Name == input.Name {
			return projects.Project{}, shared.ErrDuplicate
		}
	}
	p := projects.Project{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     input.OwnerID,
		CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}
	m.projects[p.ID] = p
	return p, nil
}

func (m *memRepo) Detail(ctx context.Context, id uuid.UUID) (projects.Detail, error) {
	m.detailCalls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return projects.Detail{}, m.err
	}
	p, ok := m.projects[id]
	if !ok {
		return projects.Detail{}, shared.ErrNotFound
	}
	return projects.Detail{
		Project: p,
		Owner:   m.owners[p.OwnerID].Identity(),
		Tasks:   []projects.TaskView{},
	}, nil
}

func (m *memRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.projects[id]
	return ok, m.err
}

var errStorageDown = errors.New("storage down")
