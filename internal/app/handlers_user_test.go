package app

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMe(t *testing.T) {
	t.Run("returns the resolved identity without a password field", func(t *testing.T) {
		env := newTestEnv(t)
		tokenString := env.register(t, "Ann", "ann@x.com", "secret1")

		rec := env.doJSON(t, http.MethodGet, "/api/auth/me", nil, tokenString)
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Ann", body["name"])
		assert.Equal(t, "ann@x.com", body["email"])
		assert.NotEmpty(t, body["id"])
		_, hasPassword := body["password"]
		assert.False(t, hasPassword)
	})

	t.Run("rejects requests without a token", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.doJSON(t, http.MethodGet, "/api/auth/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "missing_authorization_header")
	})
}

func TestHandleAvatarUpload(t *testing.T) {
	t.Run("stores the avatar and persists its URL", func(t *testing.T) {
		env := newTestEnv(t)
		tokenString := env.register(t, "Ann", "ann@x.com", "secret1")

		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile("avatar", "me.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPut, "/api/auth/me/avatar", &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+tokenString)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), "http://storage.local/avatars/")
		assert.Len(t, env.storage.objects, 1)

		me := env.doJSON(t, http.MethodGet, "/api/auth/me", nil, tokenString)
		assert.Contains(t, me.Body.String(), "http://storage.local/avatars/")
	})

	t.Run("requires a file", func(t *testing.T) {
		env := newTestEnv(t)
		tokenString := env.register(t, "Ann", "ann@x.com", "secret1")

		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPut, "/api/auth/me/avatar", &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+tokenString)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "avatar_file_required")
	})
}

func TestHandleLiveness(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/health/liveness", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"up"`)
}
