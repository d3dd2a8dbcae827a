package projects

import (
	"time"

	"github.com/google/uuid"

	"github.com/mickaelbalensi/ProductManager/internal/auth"
)

// Project is a named container of tasks owned by one user.
type Project struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewProject carries the fields needed to persist a project.
type NewProject struct {
	Name        string
	Description string
	OwnerID     uuid.UUID
}

// CreateRequest is the payload accepted by POST /projects.
type CreateRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// Detail is a project with its owner, tasks and their comments.
type Detail struct {
	Project
	Owner auth.Identity `json:"owner"`
	Tasks []TaskView    `json:"tasks"`
}

// TaskView is a task as embedded in a project detail.
type TaskView struct {
	ID          uuid.UUID     `json:"id"`
	ProjectID   uuid.UUID     `json:"projectId"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Comments    []CommentView `json:"comments"`
}

// CommentView is a comment as embedded in a task view.
type CommentView struct {
	ID        uuid.UUID `json:"id"`
	TaskID    uuid.UUID `json:"taskId"`
	AuthorID  uuid.UUID `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
