package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/urbanfresh/auth-api/internal/auth"
	"github.com/urbanfresh/auth-api/internal/config"
	"github.com/urbanfresh/auth-api/internal/http/respond"
	"github.com/urbanfresh/auth-api/internal/models"
	"github.com/urbanfresh/auth-api/internal/service"
	"github.com/urbanfresh/auth-api/internal/storage"
)

type stubStore struct {
	users map[string]models.User
	calls int
}

func (s *stubStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.calls++
	if _, ok := s.users[user.Email]; ok {
		return models.User{}, storage.ErrAlreadyExists
	}
	user.ID = int64(len(s.users) + 1)
	user.CreatedAt = time.Now()
	s.users[user.Email] = user
	return user, nil
}

func (s *stubStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.calls++
	user, ok := s.users[email]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (s *stubStore) EmailExists(_ context.Context, email string) (bool, error) {
	s.calls++
	_, ok := s.users[email]
	return ok, nil
}

func (s *stubStore) ListUsers(_ context.Context) ([]models.User, error) {
	s.calls++
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func newTestRouter() (http.Handler, *stubStore, *auth.TokenManager) {
	cfg := config.Config{
		JWTSecret:   "test-secret",
		JWTIssuer:   "test-issuer",
		JWTTTL:      time.Hour,
		CORSOrigins: []string{"*"},
	}
	store := &stubStore{users: make(map[string]models.User)}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	svc := service.NewAuthService(store, hasher, tokens, zerolog.Nop())
	return NewRouter(cfg, svc, tokens, zerolog.Nop()), store, tokens
}

func TestRouter_PublicRoutesBypassGate(t *testing.T) {
	router, _, _ := newTestRouter()

	body, _ := json.Marshal(map[string]string{
		"name":     "Alice",
		"email":    "alice@x.com",
		"password": "pw123456",
		"phone":    "555-0100",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code, "registration needs no token")
}

func TestRouter_ProtectedRouteWithoutToken(t *testing.T) {
	router, store, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, store.calls, "store must not be touched")

	var body respond.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusUnauthorized, body.Status)
	assert.Equal(t, "Session expired or invalid token. Please log in again.", body.Message)
	assert.NotEmpty(t, body.Timestamp)
}

func TestRouter_ProtectedRouteWithToken(t *testing.T) {
	router, _, tokens := newTestRouter()

	token, err := tokens.Generate("alice@x.com", models.RoleCustomer)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "alice@x.com", body["email"])
	assert.Equal(t, "CUSTOMER", body["role"])
}

func TestRouter_AdminRouteRoleGate(t *testing.T) {
	router, store, tokens := newTestRouter()
	store.users["admin@x.com"] = models.User{ID: 1, Name: "Root", Email: "admin@x.com", Role: models.RoleAdmin}

	customerToken, err := tokens.Generate("alice@x.com", models.RoleCustomer)
	require.NoError(t, err)
	adminToken, err := tokens.Generate("admin@x.com", models.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+customerToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var users []models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "admin@x.com", users[0].Email)
}

func TestRouter_Health(t *testing.T) {
	router, _, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
