package app

import (
	"net/mail"
	"strings"
)

const minPasswordLength = 6

func validateRegisterInput(req RegisterRequest) map[string]string {
	validationErrors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		validationErrors["name"] = "name_required"
	}
	if strings.TrimSpace(req.Email) == "" {
		validationErrors["email"] = "email_required"
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		validationErrors["email"] = "invalid_email_format"
	}
	if req.Password == "" {
		validationErrors["password"] = "password_required"
	} else if len(req.Password) < minPasswordLength {
		validationErrors["password"] = "password_too_short"
	}

	if len(validationErrors) == 0 {
		return nil
	}

	return validationErrors
}

func validateLoginInput(req LoginRequest) map[string]string {
	validationErrors := make(map[string]string)

	if strings.TrimSpace(req.Email) == "" {
		validationErrors["email"] = "email_required"
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		validationErrors["email"] = "invalid_email_format"
	}
	if req.Password == "" {
		validationErrors["password"] = "password_required"
	}

	if len(validationErrors) == 0 {
		return nil
	}

	return validationErrors
}

func validateChangePasswordInput(req ChangePasswordRequest) map[string]string {
	validationErrors := make(map[string]string)

	if req.OldPassword == "" {
		validationErrors["oldPassword"] = "old_password_required"
	}
	if req.NewPassword == "" {
		validationErrors["newPassword"] = "new_password_required"
	} else if len(req.NewPassword) < minPasswordLength {
		validationErrors["newPassword"] = "password_too_short"
	}

	if len(validationErrors) == 0 {
		return nil
	}

	return validationErrors
}

func validateResetPasswordInput(req ResetPasswordRequest) map[string]string {
	validationErrors := make(map[string]string)

	if strings.TrimSpace(req.Token) == "" {
		validationErrors["token"] = "token_required"
	}
	if req.Password == "" {
		validationErrors["password"] = "password_required"
	} else if len(req.Password) < minPasswordLength {
		validationErrors["password"] = "password_too_short"
	}

	if len(validationErrors) == 0 {
		return nil
	}

	return validationErrors
}
