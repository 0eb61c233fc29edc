package app

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleRegister(t *testing.T) {
	t.Run("creates a user and issues a working token", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.doJSON(t, http.MethodPost, "/api/auth/register", RegisterRequest{
			Name:     "Ann",
			Email:    "ann@x.com",
			Password: "secret1",
		}, "")
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "Ann", resp.User.Name)
		assert.Equal(t, "ann@x.com", resp.User.Email)
		assert.NotContains(t, rec.Body.String(), "password")

		// The issued token must get through the authorization gate.
		me := env.doJSON(t, http.MethodGet, "/api/auth/me", nil, resp.Token)
		assert.Equal(t, http.StatusOK, me.Code)
		assert.Contains(t, me.Body.String(), "ann@x.com")
	})

	t.Run("stores a hash, not the plaintext", func(t *testing.T) {
		env := newTestEnv(t)
		env.register(t, "Ann", "ann@x.com", "secret1")

		stored := env.store.storedHash(t, "ann@x.com")
		assert.NotEqual(t, "secret1", stored)
		assert.NotEmpty(t, stored)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		env := newTestEnv(t)
		env.register(t, "Ann", "ann@x.com", "secret1")

		rec := env.doJSON(t, http.MethodPost, "/api/auth/register", RegisterRequest{
			Name:     "Another Ann",
			Email:    "ann@x.com",
			Password: "secret2",
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrUserExists)
		assert.Len(t, env.store.users, 1)
	})

	t.Run("rejects invalid input with per-field details", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.doJSON(t, http.MethodPost, "/api/auth/register", RegisterRequest{
			Name:     "",
			Email:    "not-an-email",
			Password: "short",
		}, "")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, ErrValidation, resp.Error)
		assert.Equal(t, "name_required", resp.Details["name"])
		assert.Equal(t, "invalid_email_format", resp.Details["email"])
		assert.Equal(t, "password_too_short", resp.Details["password"])
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.doJSON(t, http.MethodPost, "/api/auth/register", "not an object", "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrUnmarshal)
	})
}

func TestHandleLogin(t *testing.T) {
	t.Run("register then login succeeds", func(t *testing.T) {
		env := newTestEnv(t)
		env.register(t, "Ann", "ann@x.com", "secret1")

		rec := env.doJSON(t, http.MethodPost, "/api/auth/login", LoginRequest{
			Email:    "ann@x.com",
			Password: "secret1",
		}, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.NotContains(t, rec.Body.String(), "password")

		me := env.doJSON(t, http.MethodGet, "/api/auth/me", nil, resp.Token)
		assert.Equal(t, http.StatusOK, me.Code)
	})

	t.Run("same error for unknown email and wrong password", func(t *testing.T) {
		env := newTestEnv(t)
		env.register(t, "Ann", "ann@x.com", "secret1")

		unknown := env.doJSON(t, http.MethodPost, "/api/auth/login", LoginRequest{
			Email:    "nobody@x.com",
			Password: "secret1",
		}, "")
		wrong := env.doJSON(t, http.MethodPost, "/api/auth/login", LoginRequest{
			Email:    "ann@x.com",
			Password: "wrong-password",
		}, "")

		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.JSONEq(t, unknown.Body.String(), wrong.Body.String())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.doJSON(t, http.MethodPost, "/api/auth/login", LoginRequest{}, "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrValidation)
	})
}
