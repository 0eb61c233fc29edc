package app

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/sdk/middleware"
	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/sdk/models"
	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/sdk/mongodb"
	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/services/sentry"
)

const (
	resetTokenLength = 32 // 32 bytes = 64 hex characters
	resetTokenTTL    = 1 * time.Hour
)

// HandleChangePassword changes the password of the authenticated user after
// verifying the old one. The existing bearer token stays valid until its
// own expiry; tokens are stateless and never revoked server-side.
func (a *App) HandleChangePassword(c *gin.Context) {
	user, err := middleware.GetUser(c)
	if err != nil {
		writeError(c, ErrUnauthorized, nil)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, ErrUnmarshal, nil)
		return
	}

	if validationErrors := validateChangePasswordInput(req); len(validationErrors) > 0 {
		writeError(c, ErrValidation, validationErrors)
		return
	}

	// The middleware resolved the user without the hash; re-fetch with it.
	stored, err := a.store.GetUserWithPassword(c.Request.Context(), user.ID.Hex())
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			writeError(c, ErrUnauthorized, nil)
			return
		}
		a.toSentry(c, "change_password", "db", sentry.LevelError, err)
		writeError(c, ErrUpdatePassword, nil)
		return
	}

	if !a.hash.CheckPasswordHash(req.OldPassword, stored.Password) {
		writeError(c, ErrIncorrectOldPassword, nil)
		return
	}

	hashedPassword, err := a.hash.HashPassword(req.NewPassword)
	if err != nil {
		a.toSentry(c, "change_password", "hash", sentry.LevelError, err)
		writeError(c, ErrHashPassword, nil)
		return
	}

	if err := a.store.UpdateUserPassword(c.Request.Context(), user.ID.Hex(), hashedPassword); err != nil {
		a.toSentry(c, "change_password", "db", sentry.LevelError, err)
		writeError(c, ErrUpdatePassword, nil)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Password changed successfully."})
}

// HandleForgotPassword starts password recovery. The response is the same
// whether or not the email exists.
func (a *App) HandleForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, ErrUnmarshal, nil)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		writeError(c, ErrValidation, map[string]string{"email": "email_required"})
		return
	}

	neutral := MessageResponse{Message: "If the email exists, a password reset link has been sent."}

	user, err := a.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			c.JSON(http.StatusOK, neutral)
			return
		}
		a.toSentry(c, "forgot_password", "db", sentry.LevelError, err)
		writeError(c, ErrCreateResetToken, nil)
		return
	}

	resetToken, err := generateSecureToken(resetTokenLength)
	if err != nil {
		a.toSentry(c, "forgot_password", "token_generation", sentry.LevelError, err)
		writeError(c, ErrCreateResetToken, nil)
		return
	}

	_, err = a.store.CreatePasswordResetToken(c.Request.Context(), models.NewPasswordResetToken{
		UserID:    user.ID,
		Token:     resetToken,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	})
	if err != nil {
		a.toSentry(c, "forgot_password", "db", sentry.LevelError, err)
		writeError(c, ErrCreateResetToken, nil)
		return
	}

	if err := a.email.SendPasswordResetEmail(user.Email, user.Name, resetToken); err != nil {
		a.toSentry(c, "forgot_password", "email", sentry.LevelError, err)
		writeError(c, ErrSendResetEmail, nil)
		return
	}

	c.JSON(http.StatusOK, neutral)
}

// HandleResetPassword completes password recovery with a one-time token.
func (a *App) HandleResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, ErrUnmarshal, nil)
		return
	}

	if validationErrors := validateResetPasswordInput(req); len(validationErrors) > 0 {
		writeError(c, ErrValidation, validationErrors)
		return
	}

	resetToken, err := a.store.GetPasswordResetToken(c.Request.Context(), req.Token)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			writeError(c, ErrInvalidResetToken, nil)
			return
		}
		a.toSentry(c, "reset_password", "db", sentry.LevelError, err)
		writeError(c, ErrResetPassword, nil)
		return
	}

	if resetToken.UsedAt != nil || time.Now().After(resetToken.ExpiresAt) {
		writeError(c, ErrInvalidResetToken, nil)
		return
	}

	hashedPassword, err := a.hash.HashPassword(req.Password)
	if err != nil {
		a.toSentry(c, "reset_password", "hash", sentry.LevelError, err)
		writeError(c, ErrHashPassword, nil)
		return
	}

	if err := a.store.UpdateUserPassword(c.Request.Context(), resetToken.UserID.Hex(), hashedPassword); err != nil {
		a.toSentry(c, "reset_password", "db", sentry.LevelError, err)
		writeError(c, ErrResetPassword, nil)
		return
	}

	// The password is already updated, so a failure here only means the
	// token could be replayed before expiry. Report, don't fail.
	if err := a.store.MarkPasswordResetTokenUsed(c.Request.Context(), resetToken.ID); err != nil {
		a.toSentry(c, "reset_password", "db", sentry.LevelWarning, err)
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Password has been reset successfully."})
}

// generateSecureToken generates a cryptographically secure random token.
func generateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
