package tasks

import (
	"time"

	"github.com/google/uuid"

	"github.com/mickaelbalensi/ProductManager/internal/shared"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// ErrInvalidStatus is returned for a status outside the allowed set.
var ErrInvalidStatus = shared.NewError(shared.ErrValidation, "Invalid status. Allowed: todo, in_progress, done")

// ParseStatus validates raw. An empty value is rejected.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusTodo, StatusInProgress, StatusDone:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Task is a unit of work inside a project.
type Task struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"projectId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewTask carries the fields needed to persist a task.
type NewTask struct {
	ProjectID   uuid.UUID
	Title       string
	Description string
	Status      Status
}

// CreateRequest is the payload accepted by POST /projects/{id}/tasks.
type CreateRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Status      string `json:"status"`
}

// StatusRequest is the payload accepted by PATCH /tasks/{id}/status.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}
