// Package telemetry sets up OpenTelemetry metrics for booksmcp.
// When telemetry is disabled, Init returns providers that do nothing so callers never
// need to check whether metrics are enabled.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// Config controls telemetry initialization.
type Config struct {
	ServiceName string
	Enabled     bool
}

// Providers holds the initialized telemetry providers.
type Providers struct {
	Meter metric.Meter

	serviceName   string
	enabled       bool
	meterProvider *sdkmetric.MeterProvider
}

// Init creates the metric providers described by c.
// Metrics are exported through the default prometheus registry, so they show up on
// the promhttp handler mounted at /metrics.
func Init(ctx context.Context, c *Config) (*Providers, error) {
	if c == nil || !c.Enabled {
		p := &Providers{
			Meter: noop.NewMeterProvider().Meter(""),
		}
		if c != nil {
			p.serviceName = c.ServiceName
		}
		return p, nil
	}

	exporter, err := otelprom.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	res := resource.NewSchemaless(attribute.String("service.name", c.ServiceName))

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	return &Providers{
		Meter:         mp.Meter(c.ServiceName),
		serviceName:   c.ServiceName,
		enabled:       true,
		meterProvider: mp,
	}, nil
}

// IsEnabled returns true if real (non-noop) providers were initialized.
func (p *Providers) IsEnabled() bool {
	return p != nil && p.enabled
}

// ServiceName returns the service name the providers were initialized with.
func (p *Providers) ServiceName() string {
	return p.serviceName
}

// Shutdown flushes and stops the providers. It is a no-op when telemetry is disabled.
func (p *Providers) Shutdown(ctx context.Context) error {
	if p == nil || p.meterProvider == nil {
		return nil
	}
	if err := p.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}
	return nil
}
