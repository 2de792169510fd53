package commands

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/faststat/pkg/bench"
	"github.com/Sumatoshi-tech/faststat/pkg/config"
	"github.com/Sumatoshi-tech/faststat/pkg/kernels"
	"github.com/Sumatoshi-tech/faststat/pkg/observability"
)

const (
	benchCmdUse   = "bench"
	benchCmdShort = "Time kernels against the reference implementation"

	formatFlag       = "format"
	formatShort      = "f"
	formatUsage      = "output format: table, json, yaml"
	plotFlag         = "plot"
	plotUsage        = "write an HTML speedup chart to this file"
	sizesFlag        = "sizes"
	sizesUsage       = "input sizes (overrides config)"
	iterationsFlag   = "iterations"
	iterationsUsage  = "invocations per kernel and size (overrides config)"
	distributionFlag = "distribution"
	distributionUse  = "input distribution: uniform, normal, duplicates, sorted"
	plotFilePerm     = 0o600
)

// ErrInvalidDistribution is returned for an unknown --distribution value.
var ErrInvalidDistribution = errors.New("unknown distribution")

type benchFlags struct {
	format       string
	plot         string
	distribution string
	kernels      []string
	sizes        []int
	iterations   int
}

func newBenchCommand(flags *rootFlags) *cobra.Command {
	bf := &benchFlags{}

	cmd := &cobra.Command{
		Use:   benchCmdUse,
		Short: benchCmdShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			s, err := openSession(cmd, flags, observability.ModeBench)
			if err != nil {
				return err
			}

			defer func() { err = errors.Join(err, s.close(cmd.Context())) }()

			cfg, err := bf.apply(s.cfg.Bench)
			if err != nil {
				return err
			}

			opts := bench.Options{Tracer: s.providers.Tracer, Metrics: s.metrics, Logger: s.providers.Logger}
			if !flags.quiet {
				opts.Progress = cmd.ErrOrStderr()
			}

			s.providers.Logger.InfoContext(cmd.Context(), "bench started",
				"sizes", cfg.Sizes, "iterations", cfg.Iterations, "distribution", cfg.Distribution)

			report, err := bench.Run(cmd.Context(), kernels.Default(), cfg, opts)
			if err != nil {
				return err
			}

			err = report.Write(cmd.OutOrStdout(), bf.format)
			if err != nil {
				return err
			}

			if bf.plot != "" {
				return writePlot(report, bf.plot)
			}

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&bf.format, formatFlag, formatShort, bench.FormatTable, formatUsage)
	f.StringVar(&bf.plot, plotFlag, "", plotUsage)
	f.StringVar(&bf.distribution, distributionFlag, "", distributionUse)
	f.StringSliceVar(&bf.kernels, kernelsFlag, nil, kernelsUse)
	f.IntSliceVar(&bf.sizes, sizesFlag, nil, sizesUsage)
	f.IntVar(&bf.iterations, iterationsFlag, 0, iterationsUsage)

	return cmd
}

// apply overlays command-line overrides on the configured bench settings.
func (bf *benchFlags) apply(cfg config.BenchConfig) (config.BenchConfig, error) {
	if bf.distribution != "" {
		if !slices.Contains(config.Distributions, bf.distribution) {
			return cfg, fmt.Errorf("%w: %q", ErrInvalidDistribution, bf.distribution)
		}

		cfg.Distribution = bf.distribution
	}

	if len(bf.kernels) > 0 {
		cfg.Kernels = bf.kernels
	}

	if len(bf.sizes) > 0 {
		for _, size := range bf.sizes {
			if size <= 0 {
				return cfg, fmt.Errorf("%w: %d", config.ErrInvalidSize, size)
			}
		}

		cfg.Sizes = bf.sizes
	}

	if bf.iterations > 0 {
		cfg.Iterations = bf.iterations
	}

	return cfg, nil
}

func writePlot(report *bench.Report, path string) (err error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, plotFilePerm)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}

	defer func() { err = errors.Join(err, file.Close()) }()

	return report.WritePlot(file)
}
