// Package observability configures structured logging for the server and
// provides the request logging middleware.
package observability

import (
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// LogFieldRequestID is the field name for request ID.
	LogFieldRequestID = "request_id"
	// LogFieldExtensionID is the field name for the extension install ID.
	LogFieldExtensionID = "extension_id"
	// LogFieldDuration is the field name for duration in milliseconds.
	LogFieldDuration = "duration_ms"
)

// Setup installs the process-wide slog default: JSON in prod, human-readable
// text everywhere else.
func Setup(mode string) {
	var handler slog.Handler
	if mode == "prod" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))
}

// RequestLogger logs one line per handled request with a generated request ID.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			requestID := uuid.NewString()

			err := next(c)

			attrs := []any{
				LogFieldRequestID, requestID,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				LogFieldDuration, time.Since(start).Milliseconds(),
			}
			if err != nil {
				attrs = append(attrs, "error", err)
				slog.Error("request failed", attrs...)
				return err
			}
			slog.Info("request handled", attrs...)
			return nil
		}
	}
}
