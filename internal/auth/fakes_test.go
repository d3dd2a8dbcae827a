package auth_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mickaelbalensi/ProductManager/internal/auth"
	"github.com/mickaelbalensi/ProductManager/internal/shared"
)

type memRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]auth.User
	err   error
}

func newMemRepo() *memRepo {
	return &memRepo{users: make(map[uuid.UUID]auth.User)}
}

func (m *memRepo) CreateUser(ctx context.Context, input auth.NewUser) (auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return auth.User{}, m.err
	}
	for _, u := range m.users {
		if u.Email == input.Email {
			return auth.User{}, shared.ErrDuplicate
		}
	}
	user := auth.User{
		ID:           uuid.New(),
		Email:        input.Email,
		FirstName:    input.FirstName,
		FamilyName:   input.FamilyName,
		PasswordHash: input.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *memRepo) FindByEmail(ctx context.Context, email string) (auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return auth.User{}, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return auth.User{}, shared.ErrNotFound
}

func (m *memRepo) FindByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return auth.User{}, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return auth.User{}, shared.ErrNotFound
	}
	return u, nil
}

func (m *memRepo) delete(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
}

type recordingNotifier struct {
	users []auth.User
	err   error
}

func (n *recordingNotifier) UserRegistered(ctx context.Context, user auth.User) error {
	n.users = append(n.users, user)
	return n.err
}

var errStorageDown = errors.New("storage down")

var testSecret = []byte("test-secret")
