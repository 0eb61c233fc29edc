package app

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/sdk/mongodb"
	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/services/hash"
	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/services/mailtrap"
	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/services/minio"
	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/services/sentry"
	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/services/token"
)

type App struct {
	store   mongodb.Service
	hash    *hash.HashService
	tokens  *token.TokenService
	email   mailtrap.Service
	storage minio.Service
	sentry  *sentry.SentryService
}

func NewApp(
	store mongodb.Service,
	hash *hash.HashService,
	tokens *token.TokenService,
	email mailtrap.Service,
	storage minio.Service,
	sentry *sentry.SentryService,
) *App {
	return &App{
		store:   store,
		hash:    hash,
		tokens:  tokens,
		email:   email,
		storage: storage,
		sentry:  sentry,
	}
}

// toSentry reports an internal failure to the error tracker and the log.
// The client only ever sees the opaque error code the caller writes.
func (a *App) toSentry(c *gin.Context, handler, operation string, level sentry.Level, err error) {
	slog.Error("handler failure",
		"handler", handler,
		"operation", operation,
		"path", c.Request.URL.Path,
		"error", err,
	)
	a.sentry.CaptureHandlerError(handler, operation, level, err)
}
