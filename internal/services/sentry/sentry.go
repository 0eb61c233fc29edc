// Package sentry provides server-side error reporting. When SENTRY_DSN is
// unset the service degrades to a no-op so local development needs no setup.
package sentry

import (
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
)

// Level aliases the sentry severity so callers don't import the SDK directly.
type Level = sentry.Level

const (
	LevelError   = sentry.LevelError
	LevelWarning = sentry.LevelWarning
)

type SentryService struct {
	initialized bool
}

// NewSentryService creates and initializes a new Sentry service.
func NewSentryService() *SentryService {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		log.Println("SENTRY_DSN not set, Sentry disabled")
		return &SentryService{initialized: false}
	}

	environment := os.Getenv("SENTRY_ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
	})
	if err != nil {
		log.Printf("Sentry initialization failed: %v", err)
		return &SentryService{initialized: false}
	}

	log.Println("Sentry initialized successfully")
	return &SentryService{initialized: true}
}

// CaptureException captures an error and sends it to Sentry.
func (s *SentryService) CaptureException(err error) {
	if !s.initialized {
		return
	}
	sentry.CaptureException(err)
}

// CaptureHandlerError captures an error tagged with the handler and the
// operation that failed, and the severity level.
func (s *SentryService) CaptureHandlerError(handler, operation string, level Level, err error) {
	if !s.initialized {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("handler", handler)
		scope.SetTag("operation", operation)
		scope.SetLevel(level)
		sentry.CaptureException(err)
	})
}

// Flush waits for all pending events to be sent to Sentry.
func (s *SentryService) Flush(timeout time.Duration) bool {
	if !s.initialized {
		return true
	}
	return sentry.Flush(timeout)
}

// Close flushes and closes the Sentry client.
func (s *SentryService) Close() {
	s.Flush(2 * time.Second)
}
