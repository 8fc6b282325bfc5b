package logging

import (
	"context"
	"log/slog"
	"os"

	"github.com/precinct-systems/precinct-stack/common/middleware"
)

// Logger is a slog.Logger whose handler stamps the request correlation
// ID onto every record logged with a request context.
type Logger struct {
	*slog.Logger
}

// New builds a stdout Logger at the given level. format selects the
// handler: "text" for development, anything else means JSON. Source
// locations are recorded when the level is error or stricter.
func New(level slog.Level, format string) *Logger {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelError,
	}

	var base slog.Handler
	if format == "text" {
		base = slog.NewTextHandler(os.Stdout, opts)
	} else {
		base = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{Logger: slog.New(correlationHandler{base})}
}

// With returns a Logger carrying the extra attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// SetDefault routes slog.Default and the log package through l.
func SetDefault(l *Logger) {
	slog.SetDefault(l.Logger)
}

// ParseLevel maps a config string to a slog.Level. Unknown values fall
// back to info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// correlationHandler decorates records with the ID stored by the
// RequestID middleware, so log lines group per request without every
// call site threading the ID through by hand.
type correlationHandler struct {
	slog.Handler
}

func (h correlationHandler) Handle(ctx context.Context, rec slog.Record) error {
	if id := middleware.RequestIDFrom(ctx); id != "" {
		rec.AddAttrs(slog.String("request_id", id))
	}
	return h.Handler.Handle(ctx, rec)
}

func (h correlationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return correlationHandler{h.Handler.WithAttrs(attrs)}
}

func (h correlationHandler) WithGroup(name string) slog.Handler {
	return correlationHandler{h.Handler.WithGroup(name)}
}
