package auth_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mickaelbalensi/ProductManager/internal/auth"
)

func newAuthRouter(t *testing.T) (http.Handler, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	hasher, err := auth.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	gate := auth.NewGate(tokens, auth.NewIdentityResolver(repo), logger)
	handler := auth.NewHandler(logger, auth.NewService(repo, hasher, tokens, nil, logger), gate)

	r := chi.NewRouter()
	r.Route("/auth", handler.MountRoutes)
	r.Route("/users", handler.MountUserRoutes)
	return r, repo
}

func doJSON(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	return res
}

type authBody struct {
	Message string `json:"message"`
	User    struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
	Token  string `json:"token"`
	Detail string `json:"detail"`
}

func decodeAuth(t *testing.T, res *httptest.ResponseRecorder) authBody {
	t.Helper()
	var body authBody
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return body
}

const adaJSON = `{"firstName":" Ada ","familyName":"Lovelace","email":" ADA@Example.com ","password":"password123"}`

func TestRegisterLoginMeFlow(t *testing.T) {
	router, _ := newAuthRouter(t)

	res := doJSON(t, router, http.MethodPost, "/auth/register", adaJSON, "")
	require.Equal(t, http.StatusCreated, res.Code)
	registered := decodeAuth(t, res)
	assert.Equal(t, "User registered successfully", registered.Message)
	assert.Equal(t, "ada@example.com", registered.User.Email)
	assert.NotEmpty(t, registered.Token)

	res = doJSON(t, router, http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"password123"}`, "")
	require.Equal(t, http.StatusOK, res.Code)
	loggedIn := decodeAuth(t, res)
	assert.Equal(t, "Login successful", loggedIn.Message)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	res = doJSON(t, router, http.MethodGet, "/auth/me", "", loggedIn.Token)
	require.Equal(t, http.StatusOK, res.Code)
	body := res.Body.String()
	assert.Contains(t, body, `"firstName":"Ada"`)
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "$2a$")
}

func TestLoginWrongPassword(t *testing.T) {
	router, _ := newAuthRouter(t)
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/users", adaJSON, "").Code)

	for _, body := range []string{
		`{"email":"ada@example.com","password":"wrongpassword"}`,
		`{"email":"nobody@example.com","password":"password123"}`,
	} {
		res := doJSON(t, router, http.MethodPost, "/auth/login", body, "")
		assert.Equal(t, http.StatusUnauthorized, res.Code)
		assert.Equal(t, "Invalid email or password", decodeAuth(t, res).Detail)
	}
}

func TestRegisterDuplicateReturnsConflict(t *testing.T) {
	router, _ := newAuthRouter(t)
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/auth/register", adaJSON, "").Code)

	res := doJSON(t, router, http.MethodPost, "/users", adaJSON, "")
	assert.Equal(t, http.StatusConflict, res.Code)
	assert.Equal(t, "User with this email already exists", decodeAuth(t, res).Detail)
}

func TestRegisterValidation(t *testing.T) {
	router, _ := newAuthRouter(t)

	cases := map[string]string{
		`{"firstName":"Ada","familyName":"Lovelace","email":"ada@example.com","password":"123"}`:         "password must be at least 6 characters long",
		`{"firstName":"Ada","familyName":"Lovelace","email":"not-an-email","password":"password123"}`:    "invalid email format",
		`{"familyName":"Lovelace","email":"ada@example.com","password":"password123"}`:                   "firstName is required",
		`{"firstName":"   ","familyName":"Lovelace","email":"ada@example.com","password":"password123"}`: "firstName is required",
		`not json`: "invalid JSON body",
	}
	for body, want := range cases {
		res := doJSON(t, router, http.MethodPost, "/auth/register", body, "")
		assert.Equal(t, http.StatusBadRequest, res.Code, body)
		assert.Contains(t, decodeAuth(t, res).Detail, want, body)
	}
}

func TestRegisterMultibytePasswordOverByteLimit(t *testing.T) {
	router, repo := newAuthRouter(t)

	body := `{"firstName":"Ada","familyName":"Lovelace","email":"ada@example.com","password":"` +
		strings.Repeat("é", 40) + `"}`
	res := doJSON(t, router, http.MethodPost, "/auth/register", body, "")
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "password must be at most 72 bytes", decodeAuth(t, res).Detail)

	_, err := repo.FindByEmail(context.Background(), "ada@example.com")
	assert.Error(t, err)
}

func TestMeRequiresToken(t *testing.T) {
	router, _ := newAuthRouter(t)

	res := doJSON(t, router, http.MethodGet, "/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "Access token is required", decodeAuth(t, res).Detail)
}
