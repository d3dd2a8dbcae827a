package tasks

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mickaelbalensi/ProductManager/internal/platform/httpx"
	"github.com/mickaelbalensi/ProductManager/internal/shared"
)

var (
	errInvalidProjectID = shared.NewError(shared.ErrValidation, "Invalid project ID")
	errInvalidTaskID    = shared.NewError(shared.ErrValidation, "Invalid task ID")
)

// Handler wires HTTP endpoints for tasks.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountProjectRoutes registers task routes nested under /projects.
func (h *Handler) MountProjectRoutes(r chi.Router) {
	r.Post("/{id}/tasks", h.handleCreate)
}

// MountRoutes registers routes under /tasks.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Patch("/{id}/status", h.handleUpdateStatus)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, errInvalidProjectID)
		return
	}

	var req CreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := httpx.Validate(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	task, err := h.service.Create(r.Context(), projectID, req)
	if err != nil {
		h.fail(w, r, "create task", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"message": "Task created successfully",
		"task":    task,
	})
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, errInvalidTaskID)
		return
	}

	var req StatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	task, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		h.fail(w, r, "update task status", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message": "Status updated successfully",
		"task":    task,
	})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if httpx.StatusFor(err) == http.StatusInternalServerError {
		h.logger.Error(op, slog.String("path", r.URL.Path), slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
