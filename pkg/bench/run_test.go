package bench

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/faststat/pkg/config"
	"github.com/Sumatoshi-tech/faststat/pkg/kernels"
	"github.com/Sumatoshi-tech/faststat/pkg/observability"
)

func testBenchConfig() config.BenchConfig {
	return config.BenchConfig{
		Distribution: config.DistributionUniform,
		Kernels:      []string{"median_float", "variance", "mode_int"},
		Sizes:        []int{16, 256},
		Seed:         testSeed,
		Iterations:   3,
	}
}

func runTestBench(t *testing.T) *Report {
	t.Helper()

	report, err := Run(context.Background(), kernels.Default(), testBenchConfig(), Options{})
	require.NoError(t, err)

	return report
}

func TestRun_Rows(t *testing.T) {
	t.Parallel()

	report := runTestBench(t)

	require.Len(t, report.Rows, 6)
	assert.Equal(t, "median_float", report.Rows[0].Kernel)
	assert.Equal(t, 16, report.Rows[0].Size)
	assert.Equal(t, 256, report.Rows[1].Size)

	for _, row := range report.Rows {
		assert.Empty(t, row.Error, row.Kernel)
		assert.Equal(t, 3, row.Iterations)
		assert.GreaterOrEqual(t, row.KernelNs, 0.0)
		assert.GreaterOrEqual(t, row.ReferenceNs, 0.0)
	}

	_, err := uuid.Parse(report.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(testSeed), report.Seed)
}

func TestRun_RecordsMetrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	km, err := observability.NewKernelMetrics(mp.Meter("test"))
	require.NoError(t, err)

	cfg := testBenchConfig()
	cfg.Kernels = []string{"stdev"}

	_, err = Run(context.Background(), kernels.Default(), cfg, Options{Metrics: km})
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var calls int64

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "faststat.kernel.invocations" {
				continue
			}

			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)

			for _, dp := range sum.DataPoints {
				calls += dp.Value
			}
		}
	}

	assert.Equal(t, int64(cfg.Iterations*len(cfg.Sizes)), calls)
}

func TestRun_KernelErrorIsReported(t *testing.T) {
	t.Parallel()

	cfg := testBenchConfig()
	cfg.Kernels = []string{"variance"}
	cfg.Sizes = []int{1}

	var logs bytes.Buffer

	logger := slog.New(observability.NewKernelHandler(
		slog.NewJSONHandler(&logs, nil), "faststat", "", observability.ModeBench))

	report, err := Run(context.Background(), kernels.Default(), cfg, Options{Logger: logger})
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Contains(t, report.Rows[0].Error, "insufficient data")

	var record map[string]any

	require.NoError(t, json.Unmarshal(logs.Bytes(), &record))
	assert.Equal(t, "kernel error", record["msg"])
	assert.Equal(t, report.ID, record["run_id"])
	assert.Equal(t, "variance", record["kernel"])
	assert.Equal(t, "dispersion", record["group"])
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, kernels.Default(), testBenchConfig(), Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestReport_Formats(t *testing.T) {
	t.Parallel()

	report := runTestBench(t)

	var tbl bytes.Buffer
	require.NoError(t, report.Write(&tbl, FormatTable))
	assert.Contains(t, tbl.String(), "median_float")
	assert.Contains(t, tbl.String(), "256")
	assert.Contains(t, tbl.String(), report.ID)

	var js bytes.Buffer
	require.NoError(t, report.Write(&js, FormatJSON))

	var fromJSON Report
	require.NoError(t, json.Unmarshal(js.Bytes(), &fromJSON))
	assert.Equal(t, report.ID, fromJSON.ID)
	assert.Len(t, fromJSON.Rows, len(report.Rows))

	var yml bytes.Buffer
	require.NoError(t, report.Write(&yml, FormatYAML))

	var fromYAML Report
	require.NoError(t, yaml.Unmarshal(yml.Bytes(), &fromYAML))
	assert.Equal(t, report.Rows[0].Kernel, fromYAML.Rows[0].Kernel)

	require.ErrorIs(t, report.Write(&tbl, "csv"), ErrUnknownFormat)
}

func TestReport_WritePlot(t *testing.T) {
	t.Parallel()

	report := runTestBench(t)

	var buf bytes.Buffer
	require.NoError(t, report.WritePlot(&buf))

	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "mode_int")
	assert.Contains(t, html, "n=256")
}
