package comments

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mickaelbalensi/ProductManager/internal/auth"
	"github.com/mickaelbalensi/ProductManager/internal/platform/httpx"
	"github.com/mickaelbalensi/ProductManager/internal/shared"
)

var errInvalidTaskID = shared.NewError(shared.ErrValidation, "Invalid task ID")

// Handler wires HTTP endpoints for comments.
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

// MountRoutes registers comment routes nested under /tasks.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/{id}/comments", h.handleCreate)
	r.Get("/{id}/comments", h.handleList)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, errInvalidTaskID)
		return
	}

	var req CreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	req.AuthorID = strings.TrimSpace(req.AuthorID)
	if err := httpx.Validate(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	comment, err := h.service.Create(r.Context(), identity, taskID, req)
	if err != nil {
		h.fail(w, r, "create comment", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"message": "Comment created successfully",
		"comment": comment,
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, errInvalidTaskID)
		return
	}

	list, err := h.service.List(r.Context(), taskID)
	if err != nil {
		h.fail(w, r, "list comments", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"comments": list})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if httpx.StatusFor(err) == http.StatusInternalServerError {
		h.logger.Error(op, slog.String("path", r.URL.Path), slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
