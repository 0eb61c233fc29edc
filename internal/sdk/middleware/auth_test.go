package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/sdk/models"
	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/sdk/mongodb"
	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/services/token"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	_ = os.Setenv("JWT_SECRET", "middleware-test-secret")

	code := m.Run()
	os.Exit(code)
}

// stubStore serves GetUserByID from a fixed map; everything else is unused
// by the middleware.
type stubStore struct {
	mongodb.Service

	users map[string]models.User
}

func (s *stubStore) GetUserByID(_ context.Context, userID string) (models.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return models.User{}, mongodb.ErrNotFound
	}
	user.Password = ""
	return user, nil
}

func newAuthRouter(tokens *token.TokenService, store mongodb.Service) *gin.Engine {
	router := gin.New()
	router.GET("/protected", Authenticate(tokens, store), func(c *gin.Context) {
		user, err := GetUser(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, user)
	})
	return router
}

func TestAuthenticate(t *testing.T) {
	tokens := token.NewTokenService()

	userID := primitive.NewObjectID()
	store := &stubStore{users: map[string]models.User{
		userID.Hex(): {ID: userID, Name: "Ann", Email: "ann@x.com", Password: "hash"},
	}}
	router := newAuthRouter(tokens, store)

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "missing_authorization_header")
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid_authorization_header")
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid_or_expired_token")
	})

	t.Run("subject not in store", func(t *testing.T) {
		tokenString, err := tokens.GenerateToken(primitive.NewObjectID().Hex())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "user_not_found")
	})

	t.Run("valid token reaches handler with identity", func(t *testing.T) {
		tokenString, err := tokens.GenerateToken(userID.Hex())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "ann@x.com")
		assert.NotContains(t, rec.Body.String(), "password")
	})
}

func TestGetUserWithoutAuthentication(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := GetUser(c)
	assert.ErrorIs(t, err, ErrNoUser)
}
