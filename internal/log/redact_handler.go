package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// cellValueKeys contains attribute keys that carry raw dataset cell
// content. Values under these keys are always masked when they match a
// personal-identifier pattern.
var cellValueKeys = map[string]bool{
	"sample_value": true,
	"cell_value":   true,
	"top_value":    true,
	"value":        true,
}

// piiPatterns contains regex patterns for values that look like personal
// identifiers. Values matching these patterns are masked regardless of
// key name.
var piiPatterns = []*regexp.Regexp{
	// Email addresses
	regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`),

	// International and local phone numbers
	regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{6,}[0-9]$`),

	// Payment-card-sized digit runs (13-19 digits, optional separators)
	regexp.MustCompile(`^(?:[0-9][ \-]?){13,19}$`),

	// US social security number format
	regexp.MustCompile(`^[0-9]{3}-[0-9]{2}-[0-9]{4}$`),
}

// MaskValue is the string used to replace masked values.
const MaskValue = "***REDACTED***"

// RedactHandler wraps an slog.Handler and masks attribute values that
// look like personal identifiers before passing records on.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Components keep logging sample values freely; the masking policy
//     lives in exactly one place
type RedactHandler struct {
	// handler is the underlying slog handler that receives masked records.
	handler slog.Handler
}

// NewRedactHandler creates a RedactHandler wrapping the given handler.
// If handler is nil, the returned RedactHandler uses slog.Default().Handler().
func NewRedactHandler(handler slog.Handler) *RedactHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &RedactHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it to the underlying
// handler.
func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(a))
		return true
	})

	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are masked before being added.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	maskedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		maskedAttrs[i] = h.maskAttr(a)
	}
	return &RedactHandler{handler: h.handler.WithAttrs(maskedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{handler: h.handler.WithGroup(name)}
}

// maskAttr masks a single attribute, recursively handling groups.
// Only string values are ever masked: numbers, durations, and booleans
// cannot carry cell content in this codebase.
func (h *RedactHandler) maskAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		maskedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			maskedAttrs[i] = h.maskAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(maskedAttrs...)}
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}

	// Only keys that carry raw cell content are inspected; every other
	// string attribute is a field this codebase controls.
	if cellValueKeys[strings.ToLower(a.Key)] && isPIIValue(a.Value.String()) {
		return slog.String(a.Key, MaskValue)
	}

	return a
}

// isPIIValue checks if a value matches a personal-identifier pattern.
func isPIIValue(value string) bool {
	for _, pattern := range piiPatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// NewLogger creates a slog.Logger whose output masks PII-looking values.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewRedactHandler(textHandler))
}
