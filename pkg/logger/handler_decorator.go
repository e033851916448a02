package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor returns an attribute derived from ctx, or false when ctx
// carries nothing to log.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// Decorate returns a logger that runs extractors on the context of every
// record it handles. Extractors already installed on l are kept and run first.
func Decorate(l *slog.Logger, extractors ...ContextExtractor) *slog.Logger {
	if l == nil {
		return nil
	}
	extractors = appendExtractors(nil, extractors...)
	if len(extractors) == 0 {
		return l
	}
	return slog.New(newContextHandler(l.Handler(), extractors))
}

// contextHandler adds the attributes of its extractors to each record.
type contextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

// newContextHandler wraps next. Wrapping a contextHandler merges the
// extractor lists instead of nesting handlers.
func newContextHandler(next slog.Handler, extractors []ContextExtractor) slog.Handler {
	if h, ok := next.(*contextHandler); ok {
		merged := appendExtractors(append([]ContextExtractor(nil), h.extractors...), extractors...)
		return &contextHandler{next: h.next, extractors: merged}
	}
	if len(extractors) == 0 {
		return next
	}
	return &contextHandler{next: next, extractors: extractors}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	if ctx != nil {
		for _, ex := range h.extractors {
			if attr, ok := ex(ctx); ok {
				rec.AddAttrs(attr)
			}
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}

func appendExtractors(dst []ContextExtractor, extractors ...ContextExtractor) []ContextExtractor {
	for _, ex := range extractors {
		if ex != nil {
			dst = append(dst, ex)
		}
	}
	return dst
}
