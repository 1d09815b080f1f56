package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/seqinput/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(ctx, config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// ReaderMetrics holds the instruments recorded by reading sessions.
type ReaderMetrics struct {
	records      metric.Int64Counter
	units        metric.Int64Counter
	errors       metric.Int64Counter
	unitDuration metric.Float64Histogram
}

// NewReaderMetrics creates reader instruments on the given meter.
func NewReaderMetrics(meter metric.Meter) (*ReaderMetrics, error) {
	records, err := meter.Int64Counter("reader.records.total",
		metric.WithDescription("Raw records produced by reader workers"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reader.records.total counter: %w", err)
	}

	units, err := meter.Int64Counter("reader.units.total",
		metric.WithDescription("Files or file pairs read to completion or failure"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reader.units.total counter: %w", err)
	}

	errs, err := meter.Int64Counter("reader.errors.total",
		metric.WithDescription("Read errors by code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reader.errors.total counter: %w", err)
	}

	unitDuration, err := meter.Float64Histogram("reader.unit.duration",
		metric.WithDescription("Time spent reading one unit"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reader.unit.duration histogram: %w", err)
	}

	return &ReaderMetrics{
		records:      records,
		units:        units,
		errors:       errs,
		unitDuration: unitDuration,
	}, nil
}

// DefaultReaderMetrics builds reader instruments on the global meter provider.
// Instrument creation never fails on the no-op provider, so errors fall back to nil.
func DefaultReaderMetrics() *ReaderMetrics {
	m, err := NewReaderMetrics(Meter(InstrumentationName))
	if err != nil {
		logger.Warn("reader metrics disabled", logger.ErrorFields("metrics", err))
		return nil
	}
	return m
}

// RecordRecords adds n produced records. A nil receiver is a no-op.
func (m *ReaderMetrics) RecordRecords(ctx context.Context, pipeline string, n int64) {
	if m == nil || n == 0 {
		return
	}
	m.records.Add(ctx, n, metric.WithAttributes(attribute.String(AttrPipeline, pipeline)))
}

// RecordUnit records one finished unit with its outcome.
func (m *ReaderMetrics) RecordUnit(ctx context.Context, pipeline, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.units.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrPipeline, pipeline),
		attribute.String(AttrStatus, status),
	))
	m.unitDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String(AttrPipeline, pipeline),
	))
}

// RecordError records a read error by code.
func (m *ReaderMetrics) RecordError(ctx context.Context, pipeline, code string) {
	if m == nil {
		return
	}
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrPipeline, pipeline),
		attribute.String("code", code),
	))
}
