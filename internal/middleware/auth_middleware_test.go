package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(t *testing.T, m *AuthMiddleware) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/whoami", m.VerifyToken(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(OwnerIDKey))
	})
	return router
}

func TestNewAuthMiddleware_EmptySecret(t *testing.T) {
	_, err := NewAuthMiddleware("", time.Hour)
	assert.Error(t, err)
}

func TestVerifyToken_RoundTrip(t *testing.T) {
	m, err := NewAuthMiddleware("test-secret", time.Hour)
	require.NoError(t, err)
	router := newProtectedRouter(t, m)

	token, err := m.IssueToken("owner-42")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "owner-42", w.Body.String())
}

func TestVerifyToken_Rejections(t *testing.T) {
	m, err := NewAuthMiddleware("test-secret", time.Hour)
	require.NoError(t, err)
	router := newProtectedRouter(t, m)

	other, err := NewAuthMiddleware("different-secret", time.Hour)
	require.NoError(t, err)
	foreignToken, err := other.IssueToken("owner-42")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"malformed header", "owner-42"},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not.a.token"},
		{"wrong signing key", "Bearer " + foreignToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	m, err := NewAuthMiddleware("test-secret", -time.Minute)
	require.NoError(t, err)
	router := newProtectedRouter(t, m)

	token, err := m.IssueToken("owner-42")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
