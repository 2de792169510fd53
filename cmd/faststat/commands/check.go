package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/faststat/pkg/bench"
	"github.com/Sumatoshi-tech/faststat/pkg/kernels"
	"github.com/Sumatoshi-tech/faststat/pkg/observability"
)

const (
	checkCmdUse   = "check"
	checkCmdShort = "Compare every kernel with the reference implementation"
	checkCmdLong  = `Run generated cases through each kernel and its straightforward reference
(sort-based selection, gonum dispersion, count-based mode) and report every
disagreement. Exits non-zero when any case fails.`

	casesFlag   = "cases"
	casesUsage  = "cases per kernel (overrides config)"
	kernelsFlag = "kernels"
	kernelsUse  = "comma-separated kernel names (default all)"
	seedFlag    = "seed"
	seedUsage   = "generator seed (overrides config)"
)

// ErrCheckFailed is returned when at least one parity case fails.
var ErrCheckFailed = errors.New("parity check failed")

func newCheckCommand(flags *rootFlags) *cobra.Command {
	var (
		cases int
		names []string
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   checkCmdUse,
		Short: checkCmdShort,
		Long:  checkCmdLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			s, err := openSession(cmd, flags, observability.ModeCheck)
			if err != nil {
				return err
			}

			defer func() { err = errors.Join(err, s.close(cmd.Context())) }()

			cfg := s.cfg.Check
			if cases > 0 {
				cfg.Cases = cases
			}

			if len(names) > 0 {
				cfg.Kernels = names
			}

			if !cmd.Flags().Changed(seedFlag) {
				seed = s.cfg.Bench.Seed
			}

			opts := bench.Options{Tracer: s.providers.Tracer, Metrics: s.metrics, Logger: s.providers.Logger}
			if !flags.quiet {
				opts.Progress = cmd.ErrOrStderr()
			}

			s.providers.Logger.InfoContext(cmd.Context(), "check started",
				"cases", cfg.Cases, "workers", cfg.Workers, "seed", seed)

			report, err := bench.Check(cmd.Context(), kernels.Default(), cfg, seed, opts)
			if err != nil {
				return err
			}

			return printCheck(cmd, report)
		},
	}

	cmd.Flags().IntVar(&cases, casesFlag, 0, casesUsage)
	cmd.Flags().StringSliceVar(&names, kernelsFlag, nil, kernelsUse)
	cmd.Flags().Uint64Var(&seed, seedFlag, 0, seedUsage)

	return cmd
}

func printCheck(cmd *cobra.Command, report *bench.CheckReport) error {
	out := cmd.OutOrStdout()

	err := report.WriteTable(out)
	if err != nil {
		return err
	}

	for _, o := range report.Outcomes {
		for _, f := range o.Failures {
			color.New(color.FgRed).Fprintf(out, "  - %s case %d (n=%d, k=%d, interval=%g): want %s, got %s\n",
				f.Kernel, f.Case, f.Size, f.Params.K, f.Params.Interval, f.Want, f.Got)
		}
	}

	if !report.OK() {
		color.New(color.FgRed).Fprintf(out, "FAIL: %d of %d cases disagree\n",
			report.Failed(), report.Cases*len(report.Outcomes))

		return fmt.Errorf("%w: %d cases", ErrCheckFailed, report.Failed())
	}

	color.New(color.FgGreen).Fprintf(out, "PASS: %d cases\n", report.Cases*len(report.Outcomes))

	return nil
}
