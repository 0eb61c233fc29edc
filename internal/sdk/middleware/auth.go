package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/sdk/models"
	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/sdk/mongodb"
	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/services/token"
)

const (
	bearerPrefix = "Bearer "

	// UserKey is the gin context key the authenticated user is stored under.
	UserKey = "auth_user"
)

var ErrNoUser = errors.New("no authenticated user in context")

// Authenticate protects routes behind a bearer token. It extracts the token
// from the Authorization header, verifies it, resolves the subject against
// the store (without the password hash) and attaches the user to the
// context. Every failure is a 401; only the error code varies.
func Authenticate(tokens *token.TokenService, store mongodb.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header")
			return
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			abortUnauthorized(c, "invalid_authorization_header")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)

		claims, err := tokens.ParseToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "invalid_or_expired_token")
			return
		}

		user, err := store.GetUserByID(c.Request.Context(), claims.Subject)
		if err != nil {
			abortUnauthorized(c, "user_not_found")
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": code})
}

// GetUser extracts the authenticated user set by Authenticate.
func GetUser(c *gin.Context) (models.User, error) {
	val, exists := c.Get(UserKey)
	if !exists {
		return models.User{}, ErrNoUser
	}

	user, ok := val.(models.User)
	if !ok {
		return models.User{}, ErrNoUser
	}

	return user, nil
}
