package bench

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/faststat/pkg/config"
	"github.com/Sumatoshi-tech/faststat/pkg/kernels"
	"github.com/Sumatoshi-tech/faststat/pkg/observability"
	"github.com/Sumatoshi-tech/faststat/pkg/reference"
)

// Row is the timing of one kernel at one input size.
type Row struct {
	Kernel      string  `json:"kernel"          yaml:"kernel"`
	Group       string  `json:"group"           yaml:"group"`
	Size        int     `json:"size"            yaml:"size"`
	Iterations  int     `json:"iterations"      yaml:"iterations"`
	KernelNs    float64 `json:"kernel_ns_op"    yaml:"kernel_ns_op"`
	ReferenceNs float64 `json:"reference_ns_op" yaml:"reference_ns_op"`
	Speedup     float64 `json:"speedup"         yaml:"speedup"`
	Error       string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Run times cfg.Iterations invocations of every selected kernel and of its
// reference at every configured size. Inputs are generated once per kernel
// and size, so both sides see the same sequence.
func Run(ctx context.Context, reg *kernels.Registry, cfg config.BenchConfig, opts Options) (*Report, error) {
	selected, err := selectKernels(reg, cfg.Kernels)
	if err != nil {
		return nil, err
	}

	report := NewReport(cfg.Distribution, cfg.Seed)
	ctx = observability.WithRunID(ctx, report.ID)

	bar := newTracker(opts.Progress, "bench", len(selected)*len(cfg.Sizes))
	defer bar.finish()

	for ki, k := range selected {
		ref, ok := reference.ForKernel(k.Name())
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoReference, k.Name())
		}

		kernelCtx := observability.WithKernel(ctx, k.Name(), string(k.Group()))

		for si, size := range cfg.Sizes {
			err := ctx.Err()
			if err != nil {
				return report, fmt.Errorf("bench interrupted: %w", err)
			}

			stream := uint64(ki)*uint64(len(cfg.Sizes)) + uint64(si)
			c := NewGenerator(cfg.Seed, stream, cfg.Distribution).Case(k, size)

			row := timeKernel(kernelCtx, k, ref, c, cfg.Iterations, opts)
			report.Rows = append(report.Rows, row)

			opts.logger().DebugContext(kernelCtx, "size done",
				"size", row.Size, "kernel_ns_op", row.KernelNs, "speedup", row.Speedup)

			bar.tick()
		}
	}

	return report, nil
}

func timeKernel(
	ctx context.Context, k kernels.Kernel, ref reference.Func, c Case, iterations int, opts Options,
) Row {
	ctx, span := opts.tracer().Start(ctx, "bench."+k.Name(),
		trace.WithAttributes(
			attribute.Int("size", len(c.Input)),
			attribute.Int("iterations", iterations),
		))
	defer span.End()

	row := Row{
		Kernel:     k.Name(),
		Group:      string(k.Group()),
		Size:       len(c.Input),
		Iterations: iterations,
	}

	var kernelTotal time.Duration

	for range iterations {
		start := time.Now()
		_, err := k.Compute(c.Input, c.Params)
		elapsed := time.Since(start)

		opts.Metrics.RecordInvocation(ctx, k.Name(), row.Group, len(c.Input), elapsed, err)

		if err != nil {
			row.Error = err.Error()
			span.RecordError(err)
			opts.logger().WarnContext(ctx, "kernel error", "size", row.Size, "error", err)

			return row
		}

		kernelTotal += elapsed
	}

	start := time.Now()

	for range iterations {
		_, _ = ref(c.Input, c.Params)
	}

	referenceTotal := time.Since(start)

	row.KernelNs = float64(kernelTotal.Nanoseconds()) / float64(iterations)
	row.ReferenceNs = float64(referenceTotal.Nanoseconds()) / float64(iterations)

	if row.KernelNs > 0 {
		row.Speedup = row.ReferenceNs / row.KernelNs
	}

	return row
}
