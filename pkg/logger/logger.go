// Package logger provides a structured, levelled logger built on log/slog.
//
// WithCtx returns the per-request logger that middleware.Logger stored in the
// context, so every line written while serving a request carries its
// request_id:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("booking created", "booking_id", b.ID)
//	// → time=... level=INFO msg="booking created" request_id=0b5e... booking_id=12
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/thedosaspot/dosaspot/config"
)

var L *slog.Logger

func init() {
	L = slog.New(newHandler(os.Stdout, config.AppEnv(), config.LogLevel()))
	slog.SetDefault(L)
}

// newHandler picks JSON output for production and human-readable text
// everywhere else.
func newHandler(w io.Writer, env, level string) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(env, level)}

	switch env {
	case "production", "prod":
		return slog.NewJSONHandler(w, opts)
	default:
		return slog.NewTextHandler(w, opts)
	}
}

func parseLevel(env, level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if env == "production" || env == "prod" {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

// Setup rebuilds the base logger from the loaded configuration. When
// LOG_MONGO_URI is set, records are also shipped to MongoDB; the returned
// func flushes and disconnects that sink and must be called on shutdown.
func Setup() func() {
	base := newHandler(os.Stdout, config.AppEnv(), config.LogLevel())
	closer := func() {}

	if uri := config.LogMongoURI(); uri != "" {
		mh, err := NewMongoHandler(uri, config.LogMongoDB(), config.LogMongoCollection())
		if err != nil {
			slog.New(base).Warn("logger: mongo sink disabled", "error", err)
		} else {
			base = NewMultiHandler(base, mh)
			closer = mh.Close
		}
	}

	L = slog.New(base)
	slog.SetDefault(L)
	return closer
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

type ctxKey struct{}

// WithCtx returns the request-scoped logger stored in ctx, or the base logger
// when the context carries none (background jobs, CLI commands, tests).
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return L
	}
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log in ctx. Called by middleware.Logger.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// ─────────────────────────────────────────────
// Short-hand helpers (use base logger)
// ─────────────────────────────────────────────

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }

// LevelFor maps an HTTP status to the level its access-log line uses.
func LevelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}
