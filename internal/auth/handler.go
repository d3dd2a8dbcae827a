package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mickaelbalensi/ProductManager/internal/platform/httpx"
	"github.com/mickaelbalensi/ProductManager/internal/shared"
)

// Handler wires HTTP endpoints for registration, login and identity.
type Handler struct {
	logger  *slog.Logger
	service *Service
	gate    *Gate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, gate *Gate) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, gate: gate}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
	r.With(h.gate.Middleware).Get("/me", h.handleMe)
}

// MountUserRoutes registers the user creation alias.
func (h *Handler) MountUserRoutes(r chi.Router) {
	r.Post("/", h.handleRegister)
}

type authResponse struct {
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
	Token   string      `json:"token"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	req.FirstName = shared.NormalizeName(req.FirstName)
	req.FamilyName = shared.NormalizeName(req.FamilyName)
	req.Email = shared.NormalizeEmail(req.Email)
	if err := httpx.Validate(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	result, err := h.service.Register(r.Context(), req)
	if err != nil {
		h.fail(w, r, "register user", err)
		return
	}

	httpx.JSON(w, http.StatusCreated, authResponse{
		Message: "User registered successfully",
		User:    result.User,
		Token:   result.Token,
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	req.Email = shared.NormalizeEmail(req.Email)
	if err := httpx.Validate(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	result, err := h.service.Login(r.Context(), req)
	if err != nil {
		h.fail(w, r, "login", err)
		return
	}

	httpx.JSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		User:    result.User,
		Token:   result.Token,
	})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"user": identity})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if httpx.StatusFor(err) == http.StatusInternalServerError {
		h.logger.Error(op, slog.String("path", r.URL.Path), slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
