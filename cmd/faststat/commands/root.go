// Package commands implements the faststat subcommands.
package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/faststat/pkg/alg/stats"
	"github.com/Sumatoshi-tech/faststat/pkg/config"
	"github.com/Sumatoshi-tech/faststat/pkg/observability"
	"github.com/Sumatoshi-tech/faststat/pkg/version"
)

const (
	rootCmdUse   = "faststat"
	rootCmdShort = "Fast descriptive statistics kernels"
	rootCmdLong  = `faststat computes descriptive statistics with selection-based medians,
compensated dispersion and first-seen modes.

Commands:
  compute   Evaluate one kernel over numbers from arguments or stdin
  kernels   List the available kernels
  check     Compare every kernel with the reference implementation
  bench     Time kernels against the reference implementation`

	configFlag      = "config"
	configUsage     = "config file (default ./faststat.yaml)"
	logLevelFlag    = "log-level"
	logLevelUsage   = "log level override (debug, info, warn, error)"
	noColorFlag     = "no-color"
	noColorUsage    = "disable coloured output"
	quietFlag       = "quiet"
	quietShort      = "q"
	quietUsage      = "suppress progress output"
	exitInputError  = 2
	exitOtherError  = 1
	exitSuccessCode = 0
)

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	logLevel   string
	noColor    bool
	quiet      bool
}

// NewRootCommand creates the faststat command tree.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           rootCmdUse,
		Short:         rootCmdShort,
		Long:          rootCmdLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.noColor {
				color.NoColor = true //nolint:reassign // intentional override of library global
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, configFlag, "", configUsage)
	pf.StringVar(&flags.logLevel, logLevelFlag, "", logLevelUsage)
	pf.BoolVar(&flags.noColor, noColorFlag, false, noColorUsage)
	pf.BoolVarP(&flags.quiet, quietFlag, quietShort, false, quietUsage)

	rootCmd.AddCommand(newComputeCommand())
	rootCmd.AddCommand(newKernelsCommand())
	rootCmd.AddCommand(newCheckCommand(flags))
	rootCmd.AddCommand(newBenchCommand(flags))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// ExitCode maps a command error onto the process exit status: 2 for input the
// kernels reject, 1 for every other failure.
func ExitCode(err error) int {
	if err == nil {
		return exitSuccessCode
	}

	switch stats.KindOf(err) {
	case stats.KindEmptyInput, stats.KindInsufficientData, stats.KindInvalidRange, stats.KindDomain:
		return exitInputError
	default:
		return exitOtherError
	}
}

// session bundles the configuration and telemetry of one command run.
type session struct {
	cfg       *config.Config
	providers observability.Providers
	metrics   *observability.KernelMetrics
	textfile  *observability.PrometheusTextfile
}

func openSession(cmd *cobra.Command, flags *rootFlags, mode observability.AppMode) (*session, error) {
	cfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		return nil, err
	}

	levelName := cfg.Logging.Level
	if flags.logLevel != "" {
		levelName = flags.logLevel
	}

	level, err := observability.ParseLogLevel(levelName)
	if err != nil {
		return nil, err
	}

	headers, err := observability.ParseOTLPHeaders(cfg.Telemetry.OTLPHeaders)
	if err != nil {
		return nil, err
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Environment = cfg.Telemetry.Environment
	obsCfg.Mode = mode
	obsCfg.LogLevel = level
	obsCfg.LogJSON = cfg.Logging.Format == "json"
	obsCfg.LogOutput = cmd.ErrOrStderr()
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.OTLPHeaders = headers
	obsCfg.SampleRatio = cfg.Telemetry.SampleRatio

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}

	s := &session{cfg: cfg, providers: providers}

	meter := providers.Meter

	if cfg.Telemetry.MetricsFile != "" {
		s.textfile, err = observability.NewPrometheusTextfile()
		if err != nil {
			return nil, errors.Join(err, providers.Shutdown(context.Background()))
		}

		meter = s.textfile.Meter()
	}

	s.metrics, err = observability.NewKernelMetrics(meter)
	if err != nil {
		return nil, errors.Join(err, s.close(context.Background()))
	}

	return s, nil
}

// close writes the metrics textfile when configured and flushes telemetry.
func (s *session) close(ctx context.Context) error {
	var errs []error

	if s.textfile != nil {
		writeErr := s.textfile.Write(s.cfg.Telemetry.MetricsFile)
		if writeErr == nil {
			s.providers.Logger.InfoContext(ctx, "metrics written", "path", s.cfg.Telemetry.MetricsFile)
		}

		errs = append(errs, writeErr, s.textfile.Shutdown(ctx))
	}

	errs = append(errs, s.providers.Shutdown(ctx))

	return errors.Join(errs...)
}
