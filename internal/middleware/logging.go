package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"threadly/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Logger is the process-wide logger. cmd/* replace it once config is loaded.
var Logger = NewLogger(os.Getenv("APP_ENV"))

type contextKey string

// Context keys whose string values are copied onto every log record.
const (
	RequestIDKey contextKey = "request_id"
	UserIDKey    contextKey = "user_id"
	TraceIDKey   contextKey = "trace_id"
)

var stampedKeys = [...]contextKey{RequestIDKey, UserIDKey, TraceIDKey}

// stampingHandler wraps another handler and appends the request-scoped ids
// found in the record's context.
type stampingHandler struct {
	next slog.Handler
}

func (h stampingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h stampingHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, key := range stampedKeys {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			rec.AddAttrs(slog.String(string(key), v))
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h stampingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return stampingHandler{next: h.next.WithAttrs(attrs)}
}

func (h stampingHandler) WithGroup(name string) slog.Handler {
	return stampingHandler{next: h.next.WithGroup(name)}
}

// NewLogger writes JSON to stdout for production and text otherwise.
// Debug records are kept only in development.
func NewLogger(env string) *slog.Logger {
	return newLoggerTo(os.Stdout, env)
}

func newLoggerTo(w io.Writer, env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if env == "" || env == "development" {
		opts.Level = slog.LevelDebug
	}

	var base slog.Handler
	switch env {
	case "production", "prod":
		base = slog.NewJSONHandler(w, opts)
	default:
		base = slog.NewTextHandler(w, opts)
	}
	return slog.New(stampingHandler{next: base})
}

// WithUserID tags ctx with the session user so later records carry user_id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// ContextMiddleware moves the request id and trace id from fiber locals into
// the user context, where services and repositories can log with them.
func ContextMiddleware() fiber.Handler {
	locals := map[contextKey]string{
		RequestIDKey: "requestid",
		TraceIDKey:   "traceID",
	}
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		for key, local := range locals {
			if v, ok := c.Locals(local).(string); ok {
				ctx = context.WithValue(ctx, key, v)
			}
		}
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// StructuredLogger writes one access record per request. A handler error has
// not been rendered yet when this runs, so the logged status is the one the
// error handler will produce for it.
func StructuredLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		began := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusOf(err)
		}

		attrs := []slog.Attr{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(began)),
			slog.String("ip", c.IP()),
			slog.String("user_agent", c.Get(fiber.HeaderUserAgent)),
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}

		level := slog.LevelInfo
		switch {
		case status >= fiber.StatusInternalServerError:
			level = slog.LevelError
		case status >= fiber.StatusBadRequest:
			level = slog.LevelWarn
		}
		Logger.LogAttrs(c.UserContext(), level, "http request", attrs...)
		return err
	}
}

// statusOf mirrors the server's error handler: client-side fiber errors keep
// their code, everything else goes through models.StatusFor.
func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return fe.Code
	}
	return models.StatusFor(err)
}
