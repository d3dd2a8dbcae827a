package tasks_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mickaelbalensi/ProductManager/internal/shared"
	"github.com/mickaelbalensi/ProductManager/internal/tasks"
)

type memRepo struct {
	mu       sync.Mutex
	tasks    map[uuid.UUID]tasks.Task
	projects map[uuid.UUID]bool
	dropped  []uuid.UUID
	err      error
}

func newMemRepo() *memRepo {
	return &memRepo{tasks: make(map[uuid.UUID]tasks.Task), projects: make(map[uuid.UUID]bool)}
}

func (m *memRepo) Create(ctx context.Context, input tasks.NewTask) (tasks.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return tasks.Task{}, m.err
	}
	for _, t := range m.tasks {
		if t.ProjectID == input.ProjectID && t.Title == input.Title {
			return tasks.Task{}, shared.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	t := tasks.Task{
		ID: uuid.New(), ProjectID: input.ProjectID, Title: input.Title,
		Description: input.Description, Status: input.Status, CreatedAt: now, UpdatedAt: now,
	}
	m.tasks[t.ID] = t
	return t, nil
}

func (m *memRepo) Get(ctx context.Context, id uuid.UUID) (tasks.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return tasks.Task{}, shared.ErrNotFound
	}
	return t, nil
}

func (m *memRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status tasks.Status) (tasks.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return tasks.Task{}, m.err
	}
	t, ok := m.tasks[id]
	if !ok {
		return tasks.Task{}, shared.ErrNotFound
	}
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	m.tasks[id] = t
	return t, nil
}

func (m *memRepo) ProjectExists(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.projects[id], nil
}

func (m *memRepo) InvalidateProject(ctx context.Context, id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropped = append(m.dropped, id)
}

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"todo", "in_progress", "done"} {
		s, err := tasks.ParseStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, tasks.Status(raw), s)
	}
	for _, raw := range []string{"", "TODO", "blocked"} {
		_, err := tasks.ParseStatus(raw)
		assert.ErrorIs(t, err, shared.ErrValidation, raw)
	}
}

func TestCreateTask(t *testing.T) {
	repo := newMemRepo()
	projectID := uuid.New()
	repo.projects[projectID] = true
	svc := tasks.NewService(repo, repo, repo)
	ctx := context.Background()

	task, err := svc.Create(ctx, projectID, tasks.CreateRequest{Title: "Design"})
	require.NoError(t, err)
	assert.Equal(t, tasks.StatusTodo, task.Status)
	assert.Equal(t, []uuid.UUID{projectID}, repo.dropped)

	_, err = svc.Create(ctx, projectID, tasks.CreateRequest{Title: "Design"})
	assert.ErrorIs(t, err, tasks.ErrDuplicateTitle)

	_, err = svc.Create(ctx, projectID, tasks.CreateRequest{Title: "Build", Status: "blocked"})
	assert.ErrorIs(t, err, tasks.ErrInvalidStatus)

	_, err = svc.Create(ctx, uuid.New(), tasks.CreateRequest{Title: "Build"})
	assert.ErrorIs(t, err, tasks.ErrProjectNotFound)

	done, err := svc.Create(ctx, projectID, tasks.CreateRequest{Title: "Ship", Status: "done"})
	require.NoError(t, err)
	assert.Equal(t, tasks.StatusDone, done.Status)
}

func TestUpdateStatus(t *testing.T) {
	repo := newMemRepo()
	projectID := uuid.New()
	repo.projects[projectID] = true
	svc := tasks.NewService(repo, repo, nil)
	ctx := context.Background()

	task, err := svc.Create(ctx, projectID, tasks.CreateRequest{Title: "Design"})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, task.ID, "in_progress")
	require.NoError(t, err)
	assert.Equal(t, tasks.StatusInProgress, updated.Status)

	_, err = svc.UpdateStatus(ctx, task.ID, "archived")
	assert.ErrorIs(t, err, tasks.ErrInvalidStatus)

	_, err = svc.UpdateStatus(ctx, uuid.New(), "done")
	assert.ErrorIs(t, err, tasks.ErrTaskNotFound)

	repo.err = errors.New("storage down")
	_, err = svc.UpdateStatus(ctx, task.ID, "done")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, shared.ErrNotFound)
}

func newTaskRouter(repo *memRepo) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := tasks.NewHandler(logger, tasks.NewService(repo, repo, repo))
	r := chi.NewRouter()
	r.Route("/projects", handler.MountProjectRoutes)
	r.Route("/tasks", handler.MountRoutes)
	return r
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	return res
}

func TestTaskHandlers(t *testing.T) {
	repo := newMemRepo()
	projectID := uuid.New()
	repo.projects[projectID] = true
	router := newTaskRouter(repo)

	res := serve(router, http.MethodPost, "/projects/"+projectID.String()+"/tasks", `{"title":"Design","description":"wireframes"}`)
	require.Equal(t, http.StatusCreated, res.Code)
	assert.Contains(t, res.Body.String(), `"status":"todo"`)
	assert.Contains(t, res.Body.String(), "Task created successfully")

	var taskID uuid.UUID
	for id := range repo.tasks {
		taskID = id
	}

	res = serve(router, http.MethodPatch, "/tasks/"+taskID.String()+"/status", `{"status":"done"}`)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"status":"done"`)

	res = serve(router, http.MethodPatch, "/tasks/"+taskID.String()+"/status", `{"status":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "Invalid status. Allowed: todo, in_progress, done")

	res = serve(router, http.MethodPatch, "/tasks/"+taskID.String()+"/status", `{}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "status is required")

	res = serve(router, http.MethodPatch, "/tasks/"+uuid.NewString()+"/status", `{"status":"done"}`)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Contains(t, res.Body.String(), "Task not found")

	res = serve(router, http.MethodPost, "/projects/"+uuid.NewString()+"/tasks", `{"title":"Design"}`)
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = serve(router, http.MethodPost, "/projects/"+projectID.String()+"/tasks", `{"title":"  "}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "title is required")

	res = serve(router, http.MethodPost, "/projects/"+projectID.String()+"/tasks", `{"title":"Design"}`)
	assert.Equal(t, http.StatusConflict, res.Code)
}
