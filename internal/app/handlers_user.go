package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/sdk/middleware"
	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/services/sentry"
)

// HandleMe returns the profile of the authenticated user. The identity was
// already resolved by the authentication middleware, so this is a plain
// read of the context.
func (a *App) HandleMe(c *gin.Context) {
	user, err := middleware.GetUser(c)
	if err != nil {
		writeError(c, ErrUnauthorized, nil)
		return
	}

	c.JSON(http.StatusOK, user)
}

// HandleAvatarUpload stores a profile image for the authenticated user and
// persists its public URL.
func (a *App) HandleAvatarUpload(c *gin.Context) {
	user, err := middleware.GetUser(c)
	if err != nil {
		writeError(c, ErrUnauthorized, nil)
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		writeError(c, ErrValidation, map[string]string{"avatar": "avatar_file_required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		a.toSentry(c, "avatar_upload", "form", sentry.LevelError, err)
		writeError(c, ErrUploadAvatar, nil)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	objectName, err := a.storage.UploadAvatar(c.Request.Context(), user.ID.Hex(), file, contentType)
	if err != nil {
		a.toSentry(c, "avatar_upload", "storage", sentry.LevelError, err)
		writeError(c, ErrUploadAvatar, nil)
		return
	}

	avatarURL := a.storage.PublicURL(objectName)
	if err := a.store.UpdateUserAvatar(c.Request.Context(), user.ID.Hex(), avatarURL); err != nil {
		a.toSentry(c, "avatar_upload", "db", sentry.LevelError, err)
		writeError(c, ErrUploadAvatar, nil)
		return
	}

	user.Avatar = &avatarURL
	c.JSON(http.StatusOK, user)
}
