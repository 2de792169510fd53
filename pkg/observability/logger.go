package observability

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

const (
	attrTraceID = "trace_id"
	attrSpanID  = "span_id"
	attrService = "service"
	attrEnv     = "env"
	attrMode    = "mode"
	attrRunID   = "run_id"
	attrKernel  = "kernel"
	attrGroup   = "group"
	attrCase    = "case"
)

// scopeKey is the context key of the kernel scope.
type scopeKey struct{}

// scope is what a harness run knows about the work a log record belongs to.
type scope struct {
	runID   string
	kernel  string
	group   string
	item    int
	hasCase bool
}

func scopeFrom(ctx context.Context) scope {
	s, _ := ctx.Value(scopeKey{}).(scope)

	return s
}

// WithRunID returns a context whose log records carry the run id.
func WithRunID(ctx context.Context, id string) context.Context {
	s := scopeFrom(ctx)
	s.runID = id

	return context.WithValue(ctx, scopeKey{}, s)
}

// WithKernel returns a context whose log records carry the kernel name and group.
func WithKernel(ctx context.Context, kernel, group string) context.Context {
	s := scopeFrom(ctx)
	s.kernel, s.group = kernel, group

	return context.WithValue(ctx, scopeKey{}, s)
}

// WithCase returns a context whose log records carry the generated case index.
func WithCase(ctx context.Context, item int) context.Context {
	s := scopeFrom(ctx)
	s.item, s.hasCase = item, true

	return context.WithValue(ctx, scopeKey{}, s)
}

// KernelHandler is an [slog.Handler] that stamps records with the kernel
// scope stored in the context (run_id, kernel, group, case) and the
// OpenTelemetry span ids. Service metadata is attached once at construction
// so it stays top level under WithGroup.
type KernelHandler struct {
	inner slog.Handler
}

// NewKernelHandler wraps inner with scope and trace injection.
func NewKernelHandler(inner slog.Handler, service, env string, appMode AppMode) *KernelHandler {
	attrs := []slog.Attr{
		slog.String(attrService, service),
		slog.String(attrMode, string(appMode)),
	}

	if env != "" {
		attrs = append(attrs, slog.String(attrEnv, env))
	}

	return &KernelHandler{inner: inner.WithAttrs(attrs)}
}

// Enabled delegates to the inner handler.
func (h *KernelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle adds the scope and span attributes, then delegates.
func (h *KernelHandler) Handle(ctx context.Context, record slog.Record) error {
	s := scopeFrom(ctx)

	if s.runID != "" {
		record.AddAttrs(slog.String(attrRunID, s.runID))
	}

	if s.kernel != "" {
		record.AddAttrs(slog.String(attrKernel, s.kernel), slog.String(attrGroup, s.group))
	}

	if s.hasCase {
		record.AddAttrs(slog.Int(attrCase, s.item))
	}

	sc := trace.SpanContextFromContext(ctx)
	if sc.IsValid() {
		record.AddAttrs(
			slog.String(attrTraceID, sc.TraceID().String()),
			slog.String(attrSpanID, sc.SpanID().String()),
		)
	}

	err := h.inner.Handle(ctx, record)
	if err != nil {
		return fmt.Errorf("kernel handler: %w", err)
	}

	return nil
}

// WithAttrs returns a handler with attrs attached to the inner handler.
func (h *KernelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &KernelHandler{inner: h.inner.WithAttrs(attrs)}
}

// WithGroup returns a handler nesting later attributes under name.
func (h *KernelHandler) WithGroup(name string) slog.Handler {
	return &KernelHandler{inner: h.inner.WithGroup(name)}
}
