package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ErrUnmarshal            = "invalid_request_body"
	ErrValidation           = "validation_failed"
	ErrUserExists           = "user_already_exists"
	ErrInvalidCredentials   = "invalid_credentials"
	ErrUnauthorized         = "unauthorized"
	ErrIncorrectOldPassword = "incorrect_old_password"
	ErrInvalidResetToken    = "invalid_or_expired_reset_token"
	ErrHashPassword         = "internal_hash_error"
	ErrCreateUser           = "internal_create_user_error"
	ErrProcessLogin         = "internal_login_error"
	ErrGenerateToken        = "internal_generate_token_error"
	ErrUpdatePassword       = "internal_update_password_error"
	ErrCreateResetToken     = "internal_create_reset_token_error"
	ErrSendResetEmail       = "internal_send_reset_email_error"
	ErrResetPassword        = "internal_reset_password_error"
	ErrUploadAvatar         = "internal_upload_avatar_error"
)

var errorStatusMap = map[string]int{
	ErrUnmarshal:            http.StatusUnprocessableEntity,
	ErrValidation:           http.StatusUnprocessableEntity,
	ErrUserExists:           http.StatusBadRequest,
	ErrInvalidCredentials:   http.StatusUnauthorized,
	ErrUnauthorized:         http.StatusUnauthorized,
	ErrIncorrectOldPassword: http.StatusUnauthorized,
	ErrInvalidResetToken:    http.StatusBadRequest,
	ErrHashPassword:         http.StatusInternalServerError,
	ErrCreateUser:           http.StatusInternalServerError,
	ErrProcessLogin:         http.StatusInternalServerError,
	ErrGenerateToken:        http.StatusInternalServerError,
	ErrUpdatePassword:       http.StatusInternalServerError,
	ErrCreateResetToken:     http.StatusInternalServerError,
	ErrSendResetEmail:       http.StatusInternalServerError,
	ErrResetPassword:        http.StatusInternalServerError,
	ErrUploadAvatar:         http.StatusInternalServerError,
}

func statusForError(code string) int {
	if status, ok := errorStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, code string, details map[string]string) {
	c.AbortWithStatusJSON(statusForError(code), ErrorResponse{
		Error:   code,
		Details: details,
	})
}
