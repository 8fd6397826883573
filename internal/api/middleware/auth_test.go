package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nmehta6/shopassist/internal/api/middleware"
	"github.com/nmehta6/shopassist/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthSetup(t *testing.T) (*middleware.AuthMiddleware, *security.JWTManager) {
	t.Helper()
	jwtManager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 7*24*time.Hour)
	return middleware.NewAuthMiddleware(jwtManager), jwtManager
}

func TestAuthenticate(t *testing.T) {
	authMiddleware, jwtManager := newAuthSetup(t)

	userID := uuid.New()
	token, err := jwtManager.GenerateAccessToken(userID, "test@example.com", "customer")
	require.NoError(t, err)

	var gotUserID uuid.UUID
	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = middleware.GetUserID(r.Context())
		gotRole, _ = middleware.GetUserRole(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		authMiddleware.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, gotUserID)
		assert.Equal(t, "customer", gotRole)
	})

	t.Run("token query parameter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?token="+token, nil)
		rec := httptest.NewRecorder()

		authMiddleware.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, gotUserID)
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		authMiddleware.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()

		authMiddleware.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	authMiddleware, jwtManager := newAuthSetup(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	protected := authMiddleware.Authenticate(authMiddleware.RequireAdmin(next))

	t.Run("admin allowed", func(t *testing.T) {
		token, err := jwtManager.GenerateAccessToken(uuid.New(), "admin@example.com", middleware.RoleAdmin)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("customer forbidden", func(t *testing.T) {
		token, err := jwtManager.GenerateAccessToken(uuid.New(), "user@example.com", "customer")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
