package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/sdk/models"
	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/sdk/mongodb"
	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/services/sentry"
)

func (a *App) HandleRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, ErrUnmarshal, nil)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if validationErrors := validateRegisterInput(req); len(validationErrors) > 0 {
		writeError(c, ErrValidation, validationErrors)
		return
	}

	// Hashing is an explicit step before the write; the store never sees
	// a plaintext password.
	hashedPassword, err := a.hash.HashPassword(req.Password)
	if err != nil {
		a.toSentry(c, "register", "hash", sentry.LevelError, err)
		writeError(c, ErrHashPassword, nil)
		return
	}

	newUser := models.NewUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
	}

	createdUser, err := a.store.CreateUser(c.Request.Context(), newUser)
	if err != nil {
		if errors.Is(err, mongodb.ErrDuplicatedEntry) {
			writeError(c, ErrUserExists, nil)
			return
		}
		a.toSentry(c, "register", "db", sentry.LevelError, err)
		writeError(c, ErrCreateUser, nil)
		return
	}

	tokenString, err := a.tokens.GenerateToken(createdUser.ID.Hex())
	if err != nil {
		a.toSentry(c, "register", "token", sentry.LevelError, err)
		writeError(c, ErrGenerateToken, nil)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: tokenString, User: createdUser})
}

func (a *App) HandleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, ErrUnmarshal, nil)
		return
	}

	req.Email = strings.TrimSpace(req.Email)

	if validationErrors := validateLoginInput(req); len(validationErrors) > 0 {
		writeError(c, ErrValidation, validationErrors)
		return
	}

	user, err := a.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			// Same error as a wrong password so account existence
			// cannot be probed.
			writeError(c, ErrInvalidCredentials, nil)
			return
		}
		a.toSentry(c, "login", "db", sentry.LevelError, err)
		writeError(c, ErrProcessLogin, nil)
		return
	}

	if !a.hash.CheckPasswordHash(req.Password, user.Password) {
		writeError(c, ErrInvalidCredentials, nil)
		return
	}

	tokenString, err := a.tokens.GenerateToken(user.ID.Hex())
	if err != nil {
		a.toSentry(c, "login", "token", sentry.LevelError, err)
		writeError(c, ErrGenerateToken, nil)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: tokenString, User: user})
}
