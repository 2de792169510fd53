package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/faststat/pkg/alg/stats"
	"github.com/Sumatoshi-tech/faststat/pkg/config"
	"github.com/Sumatoshi-tech/faststat/pkg/kernels"
	"github.com/Sumatoshi-tech/faststat/pkg/observability"
	"github.com/Sumatoshi-tech/faststat/pkg/reference"
)

// ErrNoReference is returned for a kernel the oracle does not cover.
var ErrNoReference = errors.New("no reference implementation")

const (
	// maxReportedFailures bounds the failures kept per kernel.
	maxReportedFailures = 5

	// maxLoggedInput is the longest input copied into a Failure.
	maxLoggedInput = 32
)

// Options carries the optional collaborators of Check and Run.
type Options struct {
	// Tracer receives one span per kernel. Nil disables tracing.
	Tracer trace.Tracer

	// Metrics records every kernel invocation. Nil disables recording.
	Metrics *observability.KernelMetrics

	// Progress receives a progress bar. Nil disables it.
	Progress io.Writer

	// Logger receives kernel errors and parity failures. Nil discards them.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return o.Logger
}

func (o Options) tracer() trace.Tracer {
	if o.Tracer == nil {
		return nooptrace.NewTracerProvider().Tracer("")
	}

	return o.Tracer
}

// Failure describes one case where a kernel and the oracle disagree.
type Failure struct {
	Kernel string         `json:"kernel"           yaml:"kernel"`
	Case   int            `json:"case"             yaml:"case"`
	Size   int            `json:"size"             yaml:"size"`
	Params kernels.Params `json:"params"           yaml:"params"`
	Want   string         `json:"want"             yaml:"want"`
	Got    string         `json:"got"              yaml:"got"`
	Input  []float64      `json:"input,omitempty"  yaml:"input,omitempty"`
}

// KernelOutcome counts the cases of one kernel.
type KernelOutcome struct {
	Kernel   string    `json:"kernel"             yaml:"kernel"`
	Passed   int       `json:"passed"             yaml:"passed"`
	Failed   int       `json:"failed"             yaml:"failed"`
	Failures []Failure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// CheckReport summarizes a parity run.
type CheckReport struct {
	ID       string          `json:"id"       yaml:"id"`
	Seed     uint64          `json:"seed"     yaml:"seed"`
	Cases    int             `json:"cases"    yaml:"cases"`
	Outcomes []KernelOutcome `json:"outcomes" yaml:"outcomes"`
}

// Failed returns the number of failing cases across all kernels.
func (r *CheckReport) Failed() int {
	total := 0

	for _, o := range r.Outcomes {
		total += o.Failed
	}

	return total
}

// OK reports whether every case passed.
func (r *CheckReport) OK() bool {
	return r.Failed() == 0
}

// WriteTable renders per-kernel outcomes.
func (r *CheckReport) WriteTable(w io.Writer) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Footer = text.FormatDefault
	tbl.AppendHeader(table.Row{"Kernel", "Passed", "Failed"})

	for _, o := range r.Outcomes {
		tbl.AppendRow(table.Row{o.Kernel, o.Passed, o.Failed})
	}

	tbl.AppendFooter(table.Row{"Total", r.Cases*len(r.Outcomes) - r.Failed(), r.Failed()})

	_, err := fmt.Fprintln(w, tbl.Render())
	if err != nil {
		return fmt.Errorf("write check table: %w", err)
	}

	return nil
}

// Check runs cfg.Cases generated cases per kernel and compares each result
// with the reference oracle. Cases run on a bounded worker pool; each one
// owns its input, so kernels never share memory.
func Check(
	ctx context.Context, reg *kernels.Registry, cfg config.CheckConfig, seed uint64, opts Options,
) (*CheckReport, error) {
	selected, err := selectKernels(reg, cfg.Kernels)
	if err != nil {
		return nil, err
	}

	refs := make([]reference.Func, len(selected))

	for i, k := range selected {
		ref, ok := reference.ForKernel(k.Name())
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoReference, k.Name())
		}

		refs[i] = ref
	}

	report := &CheckReport{
		ID:       uuid.NewString(),
		Seed:     seed,
		Cases:    cfg.Cases,
		Outcomes: make([]KernelOutcome, len(selected)),
	}

	ctx = observability.WithRunID(ctx, report.ID)

	var mu sync.Mutex

	bar := newTracker(opts.Progress, "check", len(selected)*cfg.Cases)
	defer bar.finish()

	p := pool.New().WithMaxGoroutines(cfg.Workers).WithContext(ctx)

	for ki, k := range selected {
		report.Outcomes[ki].Kernel = k.Name()
		kernelCtx := observability.WithKernel(ctx, k.Name(), string(k.Group()))

		for ci := range cfg.Cases {
			stream := uint64(ki)*uint64(cfg.Cases) + uint64(ci)

			p.Go(func(poolCtx context.Context) error {
				err := poolCtx.Err()
				if err != nil {
					return err
				}

				ctx := observability.WithCase(kernelCtx, ci)

				gen := NewGenerator(seed, stream, config.Distributions[ci%len(config.Distributions)])
				c := gen.Case(k, gen.rng.IntN(cfg.MaxSize)+1)
				failure := runCase(ctx, k, refs[ki], c, cfg, opts)

				opts.Metrics.RecordCheck(ctx, k.Name(), failure == nil)

				if failure != nil {
					opts.logger().WarnContext(ctx, "parity failure",
						"size", failure.Size, "want", failure.Want, "got", failure.Got)
				}

				mu.Lock()
				defer mu.Unlock()

				outcome := &report.Outcomes[ki]
				if failure == nil {
					outcome.Passed++
				} else {
					outcome.Failed++
					failure.Case = ci

					if len(outcome.Failures) < maxReportedFailures {
						outcome.Failures = append(outcome.Failures, *failure)
					}
				}

				bar.tick()

				return nil
			})
		}
	}

	err = p.Wait()
	if err != nil {
		return report, fmt.Errorf("check interrupted: %w", err)
	}

	for i := range report.Outcomes {
		slices.SortFunc(report.Outcomes[i].Failures, func(a, b Failure) int { return a.Case - b.Case })
	}

	return report, nil
}

func runCase(
	ctx context.Context, k kernels.Kernel, ref reference.Func, c Case, cfg config.CheckConfig, opts Options,
) *Failure {
	_, span := opts.tracer().Start(ctx, "check."+k.Name(),
		trace.WithAttributes(attribute.Int("size", len(c.Input))))
	defer span.End()

	input := slices.Clone(c.Input)

	start := time.Now()
	got, gotErr := k.Compute(c.Input, c.Params)
	opts.Metrics.RecordInvocation(ctx, k.Name(), string(k.Group()), len(c.Input), time.Since(start), gotErr)

	want, wantErr := ref(input, c.Params)

	if agree(k.Exact(), want, wantErr, got, gotErr, cfg.RelTol, cfg.AbsTol) &&
		slices.Equal(input, c.Input) {
		return nil
	}

	failure := &Failure{
		Kernel: k.Name(),
		Size:   len(c.Input),
		Params: c.Params,
		Want:   describe(want, wantErr),
		Got:    describe(got, gotErr),
	}

	if !slices.Equal(input, c.Input) {
		failure.Got += " (input mutated)"
	}

	if len(input) <= maxLoggedInput {
		failure.Input = input
	}

	return failure
}

// agree compares outcomes: both fail with the same kind, or both succeed
// with equal (exact kernels) or close values.
func agree(exact bool, want float64, wantErr error, got float64, gotErr error, rel, abs float64) bool {
	if wantErr != nil || gotErr != nil {
		return stats.KindOf(wantErr) == stats.KindOf(gotErr)
	}

	if exact {
		return math.Float64bits(want) == math.Float64bits(got) || want == got
	}

	return stats.IsCloseTol(want, got, rel, abs)
}

func describe(v float64, err error) string {
	if err != nil {
		return stats.KindOf(err).String()
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}

// selectKernels resolves names against reg; no names selects every kernel.
func selectKernels(reg *kernels.Registry, names []string) ([]kernels.Kernel, error) {
	if len(names) == 0 {
		return reg.Kernels(), nil
	}

	out := make([]kernels.Kernel, 0, len(names))

	for _, name := range names {
		k, err := reg.Lookup(name)
		if err != nil {
			return nil, err
		}

		out = append(out, k)
	}

	return out, nil
}
