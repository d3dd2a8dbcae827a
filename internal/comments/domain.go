package comments

import (
	"time"

	"github.com/google/uuid"

	"github.com/mickaelbalensi/ProductManager/internal/auth"
)

// Comment is a note left on a task, with its author projection.
type Comment struct {
	ID        uuid.UUID     `json:"id"`
	TaskID    uuid.UUID     `json:"taskId"`
	AuthorID  uuid.UUID     `json:"authorId"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
	Author    auth.Identity `json:"author"`
	Task      *TaskRef      `json:"task,omitempty"`
}

// TaskRef is the short task shape returned with a new comment.
type TaskRef struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

// NewComment carries the fields needed to persist a comment.
type NewComment struct {
	TaskID   uuid.UUID
	AuthorID uuid.UUID
	Content  string
}

// CreateRequest is the payload accepted by POST /tasks/{id}/comments.
// AuthorID defaults to the authenticated user.
type CreateRequest struct {
	Content  string `json:"content" validate:"required,max=5000"`
	AuthorID string `json:"authorId" validate:"omitempty,uuid"`
}
