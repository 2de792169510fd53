package bench

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/faststat/pkg/alg/stats"
	"github.com/Sumatoshi-tech/faststat/pkg/config"
	"github.com/Sumatoshi-tech/faststat/pkg/kernels"
	"github.com/Sumatoshi-tech/faststat/pkg/observability"
)

func testCheckConfig() config.CheckConfig {
	return config.CheckConfig{
		Cases:   24,
		MaxSize: 300,
		Workers: 4,
		RelTol:  config.DefaultCheckRelTol,
	}
}

func TestCheck_AllKernelsAgreeWithReference(t *testing.T) {
	t.Parallel()

	var progress bytes.Buffer

	report, err := Check(context.Background(), kernels.Default(), testCheckConfig(), testSeed,
		Options{Progress: &progress})
	require.NoError(t, err)

	for _, o := range report.Outcomes {
		assert.Zero(t, o.Failed, "%s: %+v", o.Kernel, o.Failures)
		assert.Equal(t, report.Cases, o.Passed, o.Kernel)
	}

	assert.True(t, report.OK())
	assert.NotEmpty(t, progress.String())

	var out bytes.Buffer
	require.NoError(t, report.WriteTable(&out))
	assert.Contains(t, out.String(), "median_grouped")
	assert.Contains(t, out.String(), "Total")
	assert.NotContains(t, out.String(), "TOTAL")
}

func TestCheck_SelectedKernels(t *testing.T) {
	t.Parallel()

	cfg := testCheckConfig()
	cfg.Kernels = []string{"mode_uint8", "kth_element_int"}

	report, err := Check(context.Background(), kernels.Default(), cfg, testSeed, Options{})
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 2)
	assert.Equal(t, "mode_uint8", report.Outcomes[0].Kernel)
	assert.Equal(t, "kth_element_int", report.Outcomes[1].Kernel)
}

func TestCheck_UnknownKernel(t *testing.T) {
	t.Parallel()

	cfg := testCheckConfig()
	cfg.Kernels = []string{"median_complex"}

	_, err := Check(context.Background(), kernels.Default(), cfg, testSeed, Options{})
	require.ErrorIs(t, err, kernels.ErrUnknownKernel)
}

func TestCheck_NoReference(t *testing.T) {
	t.Parallel()

	reg := kernels.NewRegistry()
	reg.Register(&kernels.Func{
		KernelMeta: kernels.KernelMeta{KernelName: "geometric_mean", KernelDomain: kernels.DomainFloat},
		Fn:         func([]float64, kernels.Params) (float64, error) { return 0, nil },
	})

	_, err := Check(context.Background(), reg, testCheckConfig(), testSeed, Options{})
	require.ErrorIs(t, err, ErrNoReference)
}

func TestCheck_ReportsDisagreement(t *testing.T) {
	t.Parallel()

	reg := kernels.NewRegistry()
	reg.Register(&kernels.Func{
		KernelMeta: kernels.KernelMeta{
			KernelName:   "median_float",
			KernelDomain: kernels.DomainFloat,
			KernelGroup:  kernels.GroupSelection,
		},
		Fn: func(xs []float64, _ kernels.Params) (float64, error) {
			if len(xs) == 0 {
				return 0, stats.ErrEmptyInput
			}

			return xs[0], nil
		},
	})

	cfg := testCheckConfig()

	var logs bytes.Buffer

	logger := slog.New(observability.NewKernelHandler(
		slog.NewJSONHandler(&logs, nil), "faststat", "", observability.ModeCheck))

	report, err := Check(context.Background(), reg, cfg, testSeed, Options{Logger: logger})
	require.NoError(t, err)
	assert.False(t, report.OK())
	assert.Positive(t, report.Outcomes[0].Failed)
	assert.LessOrEqual(t, len(report.Outcomes[0].Failures), maxReportedFailures)

	line, _, _ := bytes.Cut(logs.Bytes(), []byte("\n"))

	var record map[string]any

	require.NoError(t, json.Unmarshal(line, &record))
	assert.Equal(t, "parity failure", record["msg"])
	assert.Equal(t, report.ID, record["run_id"])
	assert.Equal(t, "median_float", record["kernel"])
	assert.Equal(t, "selection", record["group"])
	assert.Contains(t, record, "case")
}

func TestCheck_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Check(ctx, kernels.Default(), testCheckConfig(), testSeed, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestAgree(t *testing.T) {
	t.Parallel()

	insufficient := stats.ErrInsufficientData

	tests := []struct {
		name    string
		exact   bool
		want    float64
		wantErr error
		got     float64
		gotErr  error
		ok      bool
	}{
		{name: "equal exact", exact: true, want: 3, got: 3, ok: true},
		{name: "close but not exact", exact: true, want: 1, got: 1 + 1e-12, ok: false},
		{name: "close approximate", want: 1, got: 1 + 1e-12, ok: true},
		{name: "far approximate", want: 1, got: 1.1, ok: false},
		{name: "same error kind", wantErr: insufficient, gotErr: insufficient, ok: true},
		{name: "different error kind", wantErr: insufficient, gotErr: stats.ErrDomain, ok: false},
		{name: "only kernel fails", want: 1, gotErr: stats.ErrDomain, ok: false},
		{name: "only reference fails", wantErr: insufficient, got: 1, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := agree(tt.exact, tt.want, tt.wantErr, tt.got, tt.gotErr, config.DefaultCheckRelTol, 0)
			assert.Equal(t, tt.ok, got)
		})
	}
}
