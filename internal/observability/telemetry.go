package observability

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Resource defaults.
const (
	defaultServiceName = "dcpps"
	serviceNamespace   = "musher"
	defaultEnvironment = "development"
)

// TelemetryConfig holds the configuration for OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	Version     string
	Commit      string
	Environment string
}

// TelemetryConfigFromEnv builds a TelemetryConfig from OTEL_ENABLED,
// DCPPS_OTEL_ENDPOINT, OTEL_SERVICE_NAME and OTEL_ENVIRONMENT. The exporter
// also honors the standard OTEL_EXPORTER_OTLP_* variables.
func TelemetryConfigFromEnv(version, commit string) *TelemetryConfig {
	return &TelemetryConfig{
		Enabled:     IsTelemetryEnabled(),
		Endpoint:    strings.TrimSpace(os.Getenv("DCPPS_OTEL_ENDPOINT")),
		ServiceName: strings.TrimSpace(os.Getenv("OTEL_SERVICE_NAME")),
		Version:     version,
		Commit:      commit,
		Environment: strings.TrimSpace(os.Getenv("OTEL_ENVIRONMENT")),
	}
}

// TelemetryShutdown gracefully flushes and shuts down the telemetry pipeline.
type TelemetryShutdown func(ctx context.Context) error

// SetupTelemetry installs a global OTLP/HTTP tracer provider for the
// compose.ps spans. When cfg is nil or disabled it returns a noop shutdown
// and leaves the globals alone. Shutdown restores the previous provider and
// error handler even when flushing fails.
func SetupTelemetry(ctx context.Context, cfg *TelemetryConfig) (TelemetryShutdown, error) {
	if cfg == nil || !cfg.Enabled {
		return noopShutdown, nil
	}

	origTP := otel.GetTracerProvider()
	origErrorHandler := otel.GetErrorHandler()

	attrs := []attribute.KeyValue{
		attribute.String("service.name", orDefault(cfg.ServiceName, defaultServiceName)),
		attribute.String("service.version", cfg.Version),
		attribute.String("service.namespace", serviceNamespace),
		attribute.String("deployment.environment", orDefault(cfg.Environment, defaultEnvironment)),
	}

	if cfg.Commit != "" {
		attrs = append(attrs, attribute.String("service.commit", cfg.Commit))
	}

	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(attrs...))
	if err != nil {
		return noopShutdown, fmt.Errorf("merge otel resource: %w", err)
	}

	exporterOpts := []otlptracehttp.Option{
		otlptracehttp.WithCompression(otlptracehttp.GzipCompression),
	}

	if cfg.Endpoint != "" {
		exporterOpts = append(exporterOpts, otlptracehttp.WithEndpoint(cfg.Endpoint))
	}

	exporter, err := otlptracehttp.New(ctx, exporterOpts...)
	if err != nil {
		return noopShutdown, fmt.Errorf("create otel exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(provider)

	// Export failures must never reach the watch screen.
	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(error) {}))

	return func(shutdownCtx context.Context) error {
		err := provider.Shutdown(shutdownCtx)

		otel.SetTracerProvider(origTP)
		otel.SetErrorHandler(origErrorHandler)

		if err != nil {
			return fmt.Errorf("shutdown otel provider: %w", err)
		}

		return nil
	}, nil
}

// Tracer returns a named tracer from the global TracerProvider.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(name)
}

// IsTelemetryEnabled checks the OTEL_ENABLED env var.
func IsTelemetryEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("OTEL_ENABLED")))
	return v == "1" || v == "true" || v == "yes"
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}

func noopShutdown(context.Context) error { return nil }
