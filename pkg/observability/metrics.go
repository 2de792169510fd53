package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Sumatoshi-tech/faststat/pkg/alg/stats"
)

const (
	metricInvocations  = "faststat.kernel.invocations"
	metricErrors       = "faststat.kernel.errors"
	metricDuration     = "faststat.kernel.duration"
	metricCheckCases   = "faststat.check.cases"
	metricInputElement = "faststat.kernel.input.elements"

	attrKernel = "kernel"
	attrGroup  = "group"
	attrKind   = "kind"
	attrStatus = "status"

	statusPass = "pass"
	statusFail = "fail"
)

// durationBucketBoundaries covers 1µs to 10s: single small inputs up to
// the largest bench sizes.
var durationBucketBoundaries = []float64{
	1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3, 5e-3, 0.01, 0.05, 0.1, 0.5, 1, 5, 10,
}

// KernelMetrics holds the OTel instruments recorded around kernel calls.
type KernelMetrics struct {
	invocations metric.Int64Counter
	errors      metric.Int64Counter
	duration    metric.Float64Histogram
	elements    metric.Int64Counter
	checkCases  metric.Int64Counter
}

// NewKernelMetrics creates kernel metric instruments from the given meter.
func NewKernelMetrics(mt metric.Meter) (*KernelMetrics, error) {
	invocations, err := mt.Int64Counter(metricInvocations,
		metric.WithDescription("Kernel invocations"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricInvocations, err)
	}

	errs, err := mt.Int64Counter(metricErrors,
		metric.WithDescription("Kernel failures by error kind"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricErrors, err)
	}

	duration, err := mt.Float64Histogram(metricDuration,
		metric.WithDescription("Kernel wall time in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricDuration, err)
	}

	elements, err := mt.Int64Counter(metricInputElement,
		metric.WithDescription("Input elements processed"),
		metric.WithUnit("{element}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricInputElement, err)
	}

	cases, err := mt.Int64Counter(metricCheckCases,
		metric.WithDescription("Parity check cases by outcome"),
		metric.WithUnit("{case}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCheckCases, err)
	}

	return &KernelMetrics{
		invocations: invocations,
		errors:      errs,
		duration:    duration,
		elements:    elements,
		checkCases:  cases,
	}, nil
}

// RecordInvocation records one kernel call over n elements. A non-nil err is
// counted under its stats.Kind.
// Safe to call on a nil receiver (no-op).
func (km *KernelMetrics) RecordInvocation(
	ctx context.Context, kernel, group string, n int, duration time.Duration, err error,
) {
	if km == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrKernel, kernel),
		attribute.String(attrGroup, group),
	)

	km.invocations.Add(ctx, 1, attrs)
	km.elements.Add(ctx, int64(n), attrs)
	km.duration.Record(ctx, duration.Seconds(), attrs)

	if err != nil {
		km.errors.Add(ctx, 1, metric.WithAttributes(
			attribute.String(attrKernel, kernel),
			attribute.String(attrKind, stats.KindOf(err).String()),
		))
	}
}

// RecordCheck records the outcome of one parity case.
// Safe to call on a nil receiver (no-op).
func (km *KernelMetrics) RecordCheck(ctx context.Context, kernel string, passed bool) {
	if km == nil {
		return
	}

	status := statusPass
	if !passed {
		status = statusFail
	}

	km.checkCases.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrKernel, kernel),
		attribute.String(attrStatus, status),
	))
}
