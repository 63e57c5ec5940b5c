package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

// Observability bundles the otel meter and tracer used by the generation pipeline.
// A zero value is safe to use and records nothing.
type Observability struct {
	meterProvider      *metric.MeterProvider
	tracerShutdown     func(context.Context) error
	tracer             trace.Tracer
	generationCounter  otelmetric.Int64Counter
	generationDuration otelmetric.Float64Histogram
}

// Options configures New.
type Options struct {
	ServiceName    string
	TracingEnabled bool
	JaegerEndpoint string
	Logger         Logger
}

func New(opts Options) *Observability {
	o := &Observability{tracer: noop.NewTracerProvider().Tracer(opts.ServiceName)}

	exporter, err := prometheus.New()
	if err != nil {
		if opts.Logger != nil {
			opts.Logger.Warn("failed to create prometheus exporter", map[string]interface{}{"error": err.Error()})
		}
	} else {
		provider := metric.NewMeterProvider(metric.WithReader(exporter))
		otel.SetMeterProvider(provider)
		meter := provider.Meter(opts.ServiceName)

		o.meterProvider = provider
		o.generationCounter, _ = meter.Int64Counter(
			"prd.generations",
			otelmetric.WithDescription("Number of document generations"),
		)
		o.generationDuration, _ = meter.Float64Histogram(
			"prd.generation.duration",
			otelmetric.WithDescription("Generation duration including every advisor call"),
			otelmetric.WithUnit("ms"),
		)
	}

	if opts.TracingEnabled {
		tp, err := newJaegerTracerProvider(opts.ServiceName, opts.JaegerEndpoint)
		if err != nil {
			if opts.Logger != nil {
				opts.Logger.Warn("tracing disabled", map[string]interface{}{"error": err.Error()})
			}
		} else {
			otel.SetTracerProvider(tp)
			o.tracer = tp.Tracer(opts.ServiceName)
			o.tracerShutdown = tp.Shutdown
			if opts.Logger != nil {
				opts.Logger.Info("tracing enabled", map[string]interface{}{"endpoint": opts.JaegerEndpoint})
			}
		}
	}

	return o
}

// NewNoop returns an Observability that records nothing. Used by tests and CLIs.
func NewNoop() *Observability {
	return &Observability{tracer: noop.NewTracerProvider().Tracer("noop")}
}

func (o *Observability) RecordGeneration(ctx context.Context, duration time.Duration, status string, advisors int) {
	attrs := otelmetric.WithAttributes(
		attribute.String("status", status),
		attribute.Int("advisors", advisors),
	)
	if o.generationCounter != nil {
		o.generationCounter.Add(ctx, 1, attrs)
	}
	if o.generationDuration != nil {
		o.generationDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

func (o *Observability) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
	if o.tracerShutdown != nil {
		_ = o.tracerShutdown(ctx)
	}
}
