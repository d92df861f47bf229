// Package logger provides a structured, levelled logger built on log/slog.
//
// WithCtx returns the per-request logger injected by the HTTP middleware, so
// every line written while serving a request carries its request_id:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order created", "order_id", order.ID)
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

var L = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

// Options selects the output format and level of the base logger.
type Options struct {
	Env   string
	Level string
	Out   io.Writer
	// Extra handlers receive every record as well (e.g. a MongoHandler).
	Extra []slog.Handler
}

// Setup rebuilds L (and slog's default) from opts. Production environments
// log JSON; anything else logs human-readable text.
func Setup(opts Options) *slog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	hopts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var handler slog.Handler
	switch opts.Env {
	case "production", "prod":
		handler = slog.NewJSONHandler(out, hopts)
	default:
		handler = slog.NewTextHandler(out, hopts)
	}
	if len(opts.Extra) > 0 {
		handler = NewMultiHandler(append([]slog.Handler{handler}, opts.Extra...)...)
	}

	L = slog.New(handler)
	slog.SetDefault(L)
	return L
}

// ParseLevel maps debug/info/warn/error to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type ctxKey struct{}

// WithCtx returns the logger stored in ctx by InjectLogger, or L.
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

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
