package log

import (
	"context"
	"fmt"
	"log/slog"
)

// DefaultMaxValueLen is the length at which string attribute values are
// truncated. Long enough for any context window or pattern, far too short
// for a full expansion.
const DefaultMaxValueLen = 256

// TruncateHandler wraps an slog.Handler and caps oversized string
// attribute values before passing records on. Digit expansions and
// position traces grow with the precision budget; logging one untruncated
// would dwarf everything else in the stream.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites stay free to log whatever attributes they like
type TruncateHandler struct {
	// handler is the underlying slog handler that receives capped records.
	handler slog.Handler

	// maxLen is the maximum string value length passed through unchanged.
	maxLen int
}

// TruncateOption configures a TruncateHandler.
type TruncateOption func(*TruncateHandler)

// WithMaxValueLen overrides the truncation threshold.
func WithMaxValueLen(n int) TruncateOption {
	return func(h *TruncateHandler) {
		if n > 0 {
			h.maxLen = n
		}
	}
}

// NewTruncateHandler creates a TruncateHandler wrapping the given handler.
// If handler is nil, the returned TruncateHandler uses slog.Default().Handler().
func NewTruncateHandler(handler slog.Handler, opts ...TruncateOption) *TruncateHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}

	h := &TruncateHandler{
		handler: handler,
		maxLen:  DefaultMaxValueLen,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *TruncateHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle caps the record's attributes and passes it to the underlying
// handler.
func (h *TruncateHandler) Handle(ctx context.Context, r slog.Record) error {
	capped := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		capped.AddAttrs(h.truncateAttr(a))
		return true
	})

	return h.handler.Handle(ctx, capped)
}

// WithAttrs returns a new TruncateHandler whose underlying handler carries
// the capped attributes.
func (h *TruncateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	capped := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		capped[i] = h.truncateAttr(a)
	}
	return &TruncateHandler{
		handler: h.handler.WithAttrs(capped),
		maxLen:  h.maxLen,
	}
}

// WithGroup returns a new TruncateHandler with the given group name.
func (h *TruncateHandler) WithGroup(name string) slog.Handler {
	return &TruncateHandler{
		handler: h.handler.WithGroup(name),
		maxLen:  h.maxLen,
	}
}

// truncateAttr caps a single attribute, recursing into groups.
func (h *TruncateHandler) truncateAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		s := a.Value.String()
		if len(s) > h.maxLen {
			a.Value = slog.StringValue(fmt.Sprintf("%s...(truncated, %d chars)", s[:h.maxLen], len(s)))
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		capped := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			capped[i] = h.truncateAttr(ga)
		}
		a.Value = slog.GroupValue(capped...)
	default:
	}
	return a
}
