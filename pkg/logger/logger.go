// Package logger provides a structured, levelled logger built on log/slog.
//
// WithCtx returns the per-request logger injected by the Logger middleware,
// so every line written while serving a request carries its request_id:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("item added to cart", "product_id", id)
//	// → time=... level=INFO msg="item added to cart" request_id=a1b2c3d4 product_id=7
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/Eswaramoorthy-2004/my-ecom-store/config"
)

var L *slog.Logger

func init() {
	L = New(os.Stdout, config.AppEnv())
	slog.SetDefault(L)
}

// New builds a logger for env: JSON at INFO in production, text at DEBUG
// everywhere else.
func New(w io.Writer, env string) *slog.Logger {
	return slog.New(newHandler(w, env))
}

func newHandler(w io.Writer, env string) slog.Handler {
	switch env {
	case "production", "prod":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}

// AttachMongo fans records out to a MongoDB collection in addition to the
// console. The returned func flushes and disconnects; call it on shutdown.
func AttachMongo(uri, db, collection string) (func(), error) {
	mh, err := NewMongoHandler(uri, db, collection)
	if err != nil {
		return func() {}, err
	}

	L = slog.New(NewMultiHandler(newHandler(os.Stdout, config.AppEnv()), mh))
	slog.SetDefault(L)
	return mh.Close, nil
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

type ctxKey struct{}

// WithCtx returns the logger stored in ctx by InjectLogger, or the base
// logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return L
	}
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
