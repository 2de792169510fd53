package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// PrometheusTextfile collects OTel instruments into a private Prometheus
// registry and writes them in the node-exporter textfile format.
type PrometheusTextfile struct {
	registry *prometheus.Registry
	provider *sdkmetric.MeterProvider
}

// NewPrometheusTextfile creates an exporter backed by its own registry, so
// several instances never conflict over collectors.
func NewPrometheusTextfile() (*PrometheusTextfile, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(
		promexporter.WithRegisterer(registry),
	)
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	return &PrometheusTextfile{
		registry: registry,
		provider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter)),
	}, nil
}

// Meter returns a meter whose instruments land in the textfile.
func (pt *PrometheusTextfile) Meter() metric.Meter {
	return pt.provider.Meter(meterName)
}

// Write gathers the registry into path, replacing it atomically.
func (pt *PrometheusTextfile) Write(path string) error {
	err := prometheus.WriteToTextfile(path, pt.registry)
	if err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}

	return nil
}

// Shutdown releases the meter provider.
func (pt *PrometheusTextfile) Shutdown(ctx context.Context) error {
	return pt.provider.Shutdown(ctx)
}
