package logger

import (
	"context"
	"log/slog"
)

type ctxKey string

const (
	loggerKey ctxKey = "logger"
	attrsKey  ctxKey = "attrs"
)

// With returns a new context carrying fields. They are attached to the context logger and
// to every record logged through a *Context method of a logger built by Configure.
func With(ctx context.Context, fields ...any) context.Context {
	l := From(ctx).With(fields...)
	ctx = context.WithValue(ctx, loggerKey, l)

	attrs := append(Attrs(ctx), argsToAttrs(fields)...)
	return context.WithValue(ctx, attrsKey, attrs)
}

// From returns the logger stored in context, or default if missing.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return LoggerWrapper()
}

// Attrs returns a copy of the request-scoped fields stored in ctx.
func Attrs(ctx context.Context) []slog.Attr {
	attrs, _ := ctx.Value(attrsKey).([]slog.Attr)
	return append([]slog.Attr(nil), attrs...)
}

func argsToAttrs(args []any) []slog.Attr {
	r := slog.Record{}
	r.Add(args...)
	attrs := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	return attrs
}

type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if attrs, ok := ctx.Value(attrsKey).([]slog.Attr); ok {
			r.AddAttrs(attrs...)
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}
