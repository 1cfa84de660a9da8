package telemetry

import (
	"context"
	"fmt"

	"github.com/erp/invoicing/internal/infrastructure/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// Duration buckets in seconds for report builds and event handlers
var durationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

type metricsOptions struct {
	reader sdkmetric.Reader
}

// MetricsOption customizes SetupMetrics
type MetricsOption func(*metricsOptions)

// WithReader replaces the periodic OTLP reader, e.g. with a manual reader in tests
func WithReader(r sdkmetric.Reader) MetricsOption {
	return func(o *metricsOptions) { o.reader = r }
}

// SetupMetrics installs the global meter provider. Instruments created from
// Meter before the call start recording once it returns. With telemetry or
// metrics disabled the global no-op provider stays.
func SetupMetrics(ctx context.Context, cfg config.TelemetryConfig, log *zap.Logger, opts ...MetricsOption) (ShutdownFunc, error) {
	if !cfg.Enabled || !cfg.MetricsEnabled {
		log.Info("Metrics disabled")
		return func(context.Context) error { return nil }, nil
	}

	var o metricsOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.reader == nil {
		exp, err := newOTLPMetricExporter(ctx, cfg)
		if err != nil {
			return nil, err
		}
		o.reader = sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(cfg.MetricsInterval))
	}

	res, err := serviceResource(cfg)
	if err != nil {
		return nil, err
	}
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithResource(res), sdkmetric.WithReader(o.reader))
	otel.SetMeterProvider(provider)

	log.Info("Metrics enabled",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.Duration("export_interval", cfg.MetricsInterval),
	)
	return func(ctx context.Context) error {
		if err := provider.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown meter provider: %w", err)
		}
		return nil
	}, nil
}

func newOTLPMetricExporter(ctx context.Context, cfg config.TelemetryConfig) (sdkmetric.Exporter, error) {
	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create OTLP metric exporter: %w", err)
	}
	return exp, nil
}

// Meter returns the service meter of the global provider
func Meter() metric.Meter {
	return otel.Meter(TracerName)
}

func newDurationHistogram(meter metric.Meter, name, description string) (metric.Float64Histogram, error) {
	h, err := meter.Float64Histogram(name,
		metric.WithDescription(description),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("create histogram %s: %w", name, err)
	}
	return h, nil
}
