package smoke

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ProviderConfig configures the OpenTelemetry SDK for a smoke run.
type ProviderConfig struct {
	// ServiceName is the service name reported in telemetry.
	// Default: "arc-damage-tracker-e2e".
	ServiceName string

	// ServiceVersion is the harness version reported in telemetry.
	ServiceVersion string

	// Environment is reported as deployment.environment.
	// Default: "development".
	Environment string

	// Exporter is an optional span exporter. When nil, spans are recorded
	// but not exported, which keeps tests hermetic. Real runs pass the
	// exporter from NewOTLPExporter.
	Exporter sdktrace.SpanExporter
}

// InitProvider initialises the OTel SDK and registers the tracer provider
// globally. Returns a shutdown function that flushes buffered spans and
// closes the exporter. Call it in a defer from main().
func InitProvider(ctx context.Context, cfg ProviderConfig) (shutdown func(context.Context) error, err error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = serviceName
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
	if err != nil {
		return nil, err
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
	}
	if cfg.Exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(cfg.Exporter))
	}
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

// NewOTLPExporter dials an OTLP gRPC collector at endpoint, given as
// host:port. The connection is plaintext; smoke runs target a local
// collector.
func NewOTLPExporter(ctx context.Context, endpoint string) (sdktrace.SpanExporter, error) {
	return otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
}
