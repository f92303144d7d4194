package log

import (
	"context"
	"log/slog"
)

type contextKey string

const contextKeyAttrs contextKey = "attrs"

// ContextHandler enriches records with the attributes attached to the
// context via WithAttrs.
type ContextHandler struct {
	slog.Handler
}

// Handle implements slog.Handler.
func (h ContextHandler) Handle(ctx context.Context, record slog.Record) error {
	if attrs, ok := ctx.Value(contextKeyAttrs).([]slog.Attr); ok {
		record.AddAttrs(attrs...)
	}

	return h.Handler.Handle(ctx, record)
}

func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	existing, ok := ctx.Value(contextKeyAttrs).([]slog.Attr)
	if ok {
		attrs = append(existing[:len(existing):len(existing)], attrs...)
	}

	return context.WithValue(ctx, contextKeyAttrs, attrs)
}

func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

var _ slog.Handler = ContextHandler{}
