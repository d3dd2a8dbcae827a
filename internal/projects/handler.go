package projects

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

// ErrInvalidID is returned for a malformed project id in the path.
var ErrInvalidID = shared.NewError(shared.ErrValidation, "Invalid project ID")

// Handler wires HTTP endpoints for projects.
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

// MountRoutes registers project routes. The caller installs the gate.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.handleCreate)
	r.Get("/{id}", h.handleGet)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}

	var req CreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := httpx.Validate(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	project, err := h.service.Create(r.Context(), identity.ID, req)
	if err != nil {
		h.fail(w, r, "create project", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"message": "Project created successfully",
		"project": project,
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, ErrInvalidID)
		return
	}

	detail, err := h.service.Detail(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get project", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"project": detail})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if httpx.StatusFor(err) == http.StatusInternalServerError {
		h.logger.Error(op, slog.String("path", r.URL.Path), slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
