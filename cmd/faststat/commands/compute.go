package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/faststat/pkg/kernels"
)

const (
	computeCmdUse   = "compute <kernel> [numbers...|-]"
	computeCmdShort = "Evaluate one kernel over numbers from arguments or stdin"
	computeCmdLong  = `Evaluate one kernel. Numbers are taken from the arguments after the kernel
name; with no numbers or a single "-" they are read from stdin, separated by
whitespace or commas. Put "--" before negative numbers.

Examples:
  faststat compute median_float 1 2 3 4
  seq 1 100 | faststat compute variance -
  faststat compute kth_element_int --k 2 5 3 1 4 2
  faststat compute median_grouped --interval 2 1 3 3 5 7
  faststat compute mode_int -- -1 -1 2`

	computeMinArgs     = 1
	stdinMarker        = "-"
	kFlag              = "k"
	kUsage             = "zero-based rank for kth_element kernels"
	intervalFlag       = "interval"
	intervalUsage      = "class width for median_grouped"
	defaultInterval    = 1.0
	maxScanTokenLength = 1 << 20
)

// ErrInvalidNumber is returned when an input token does not parse as a number.
var ErrInvalidNumber = errors.New("invalid number")

func newComputeCommand() *cobra.Command {
	var params kernels.Params

	cmd := &cobra.Command{
		Use:   computeCmdUse,
		Short: computeCmdShort,
		Long:  computeCmdLong,
		Args:  cobra.MinimumNArgs(computeMinArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(cmd, args[0], args[1:], params)
		},
	}

	cmd.Flags().IntVar(&params.K, kFlag, 0, kUsage)
	cmd.Flags().Float64Var(&params.Interval, intervalFlag, defaultInterval, intervalUsage)

	return cmd
}

func runCompute(cmd *cobra.Command, name string, tokens []string, params kernels.Params) error {
	k, err := kernels.Default().Lookup(name)
	if err != nil {
		return err
	}

	var xs []float64

	if len(tokens) == 0 || (len(tokens) == 1 && tokens[0] == stdinMarker) {
		xs, err = readNumbers(cmd.InOrStdin())
	} else {
		xs, err = parseNumbers(tokens)
	}

	if err != nil {
		return err
	}

	result, err := k.Compute(xs, params)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(result, 'g', -1, 64))
	if err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	return nil
}

// readNumbers scans whitespace- or comma-separated numbers from r.
func readNumbers(r io.Reader) ([]float64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxScanTokenLength)

	var tokens []string

	for scanner.Scan() {
		tokens = append(tokens, splitNumbers(scanner.Text())...)
	}

	err := scanner.Err()
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}

	return parseNumbers(tokens)
}

func splitNumbers(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\r'
	})
}

func parseNumbers(tokens []string) ([]float64, error) {
	xs := make([]float64, 0, len(tokens))

	for _, token := range tokens {
		for _, field := range splitNumbers(token) {
			x, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, field)
			}

			xs = append(xs, x)
		}
	}

	return xs, nil
}
