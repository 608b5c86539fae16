package telemetry

import (
	"context"

	"github.com/shenikar/event_ops_system/internal/config"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ShutdownFunc сбрасывает и останавливает экспорт трасс
type ShutdownFunc func(context.Context) error

func noop(context.Context) error { return nil }

// Setup настраивает OTLP/gRPC экспорт трасс. Без OTEL_EXPORTER_OTLP_ENDPOINT трассировка выключена.
func Setup(ctx context.Context, serviceName string, cfg *config.Config, log *logrus.Logger) ShutdownFunc {
	if cfg.OTLPEndpoint == "" {
		log.Info("Tracing disabled: OTLP endpoint is not configured")
		return noop
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.OTLPInsecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		log.WithError(err).Error("Failed to create OTLP exporter")
		return noop
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		log.WithError(err).Warn("Failed to build telemetry resource")
	}

	provider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	log.WithField("endpoint", cfg.OTLPEndpoint).Info("Tracing enabled")

	return provider.Shutdown
}
