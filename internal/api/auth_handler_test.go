package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"credvault-backend/internal/core"
	"credvault-backend/internal/middleware"
	"credvault-backend/internal/models"
)

type stubAuthService struct {
	owner *models.Owner
	err   error
}

func (s *stubAuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.Owner, error) {
	return s.owner, s.err
}

func (s *stubAuthService) ValidateCredentials(ctx context.Context, email, password string) (*models.Owner, error) {
	return s.owner, s.err
}

func (s *stubAuthService) GetOwner(ctx context.Context, ownerID string) (*models.Owner, error) {
	return s.owner, s.err
}

func newAuthRouter(t *testing.T, svc core.AuthService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authMW, err := middleware.NewAuthMiddleware("test-secret", time.Hour)
	require.NoError(t, err)

	h := NewAuthHandler(svc, authMW, zap.NewNop())
	router := gin.New()
	router.POST("/auth/register", h.Register)
	router.POST("/auth/login", h.Login)
	return router
}

func TestRegisterHandler(t *testing.T) {
	owner := &models.Owner{ID: "o1", Name: "Alice", Email: "alice@example.com", PasswordHash: "never-serialized"}
	router := newAuthRouter(t, &stubAuthService{owner: owner})

	w := doRequest(router, http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"s3cret-passphrase"}`)

	require.Equal(t, http.StatusCreated, w.Code)

	var got AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotEmpty(t, got.Token)
	require.NotNil(t, got.Owner)
	assert.Equal(t, "o1", got.Owner.ID)
	assert.NotContains(t, w.Body.String(), "never-serialized", "password hash must not leave the server")
}

func TestRegisterHandler_Rejections(t *testing.T) {
	router := newAuthRouter(t, &stubAuthService{err: core.ErrDuplicateEmail})

	// Invalid email fails binding before the service is reached.
	w := doRequest(router, http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"not-an-email","password":"s3cret-passphrase"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Password shorter than 8 characters.
	w = doRequest(router, http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"s3cret-passphrase"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginHandler(t *testing.T) {
	owner := &models.Owner{ID: "o1", Email: "alice@example.com"}
	router := newAuthRouter(t, &stubAuthService{owner: owner})

	w := doRequest(router, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"s3cret-passphrase"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var got AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotEmpty(t, got.Token)
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	router := newAuthRouter(t, &stubAuthService{err: core.ErrInvalidCredentials})

	w := doRequest(router, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"wrong"}`)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var got ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Invalid email or password", got.Error)
}
