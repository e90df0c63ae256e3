package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// TelemetryConfig holds the configuration for telemetry
type TelemetryConfig struct {
	// TracingEndpoint is an OTLP/HTTP collector endpoint; empty disables tracing.
	TracingEndpoint string
	SampleRate      float64
	// OTelMetrics exports OpenTelemetry instruments through the Prometheus
	// default registry served on the metrics address.
	OTelMetrics bool
	Pair        string
}

// Telemetry manages OpenTelemetry tracing and metrics
type Telemetry struct {
	config    TelemetryConfig
	meter     metric.Meter
	shutdowns []func(context.Context) error
}

// InitTelemetry installs the global tracer and meter providers. With nothing
// enabled it returns a Telemetry whose meter is the global no-op one.
func InitTelemetry(cfg TelemetryConfig) (*Telemetry, error) {
	tel := &Telemetry{config: cfg, meter: otel.Meter(Name)}
	if cfg.TracingEndpoint == "" && !cfg.OTelMetrics {
		return tel, nil
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(Name),
			attribute.String("pool.pair", cfg.Pair),
		),
	)
	if err != nil {
		return nil, err
	}

	if cfg.TracingEndpoint != "" {
		if err := tel.initTracing(res); err != nil {
			return nil, err
		}
	}
	if cfg.OTelMetrics {
		if err := tel.initMetrics(res); err != nil {
			return nil, err
		}
	}
	return tel, nil
}

// initTracing sets up OTLP/HTTP tracing
func (t *Telemetry) initTracing(res *resource.Resource) error {
	if _, err := url.Parse(t.config.TracingEndpoint); err != nil {
		return fmt.Errorf("tracing endpoint: %w", err)
	}
	if t.config.SampleRate < 0 || t.config.SampleRate > 1 {
		return fmt.Errorf("sample rate must be within [0, 1], got %v", t.config.SampleRate)
	}

	endpoint := strings.TrimPrefix(t.config.TracingEndpoint, "http://")
	client := otlptracehttp.NewClient(
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	exp, err := otlptrace.New(context.Background(), client)
	if err != nil {
		return err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(
			trace.TraceIDRatioBased(t.config.SampleRate),
		)),
	)

	otel.SetTracerProvider(tp)
	t.shutdowns = append(t.shutdowns, tp.Shutdown)
	return nil
}

// initMetrics sets up the Prometheus bridge for OpenTelemetry instruments
func (t *Telemetry) initMetrics(res *resource.Resource) error {
	exporter, err := prometheus.New()
	if err != nil {
		return err
	}

	provider := metricsdk.NewMeterProvider(
		metricsdk.WithResource(res),
		metricsdk.WithReader(exporter),
	)

	otel.SetMeterProvider(provider)
	t.meter = provider.Meter(Name)
	t.shutdowns = append(t.shutdowns, provider.Shutdown)
	return nil
}

// Meter returns the meter instruments should be created from.
func (t *Telemetry) Meter() metric.Meter {
	return t.meter
}

// Shutdown flushes and stops every provider that was started.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var firstErr error
	for _, shutdown := range t.shutdowns {
		if err := shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// TxRecorder records delivered transactions and committed heights.
type TxRecorder struct {
	txCounter   metric.Int64Counter
	txDuration  metric.Float64Histogram
	blockHeight metric.Int64Gauge
}

// NewTxRecorder creates the transaction instruments on meter.
func NewTxRecorder(meter metric.Meter) (*TxRecorder, error) {
	txCounter, err := meter.Int64Counter(
		"cpamm.tx.total",
		metric.WithDescription("Total number of delivered transactions"),
		metric.WithUnit("{transaction}"),
	)
	if err != nil {
		return nil, err
	}

	txDuration, err := meter.Float64Histogram(
		"cpamm.tx.processing_time",
		metric.WithDescription("Transaction processing time"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	blockHeight, err := meter.Int64Gauge(
		"cpamm.block.height",
		metric.WithDescription("Last committed height"),
		metric.WithUnit("{block}"),
	)
	if err != nil {
		return nil, err
	}

	return &TxRecorder{
		txCounter:   txCounter,
		txDuration:  txDuration,
		blockHeight: blockHeight,
	}, nil
}

// RecordTransaction records one delivered transaction.
func (r *TxRecorder) RecordTransaction(ctx context.Context, txType string, duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "failed"
	}

	attrs := metric.WithAttributes(
		attribute.String("tx.type", txType),
		attribute.String("tx.status", status),
	)
	r.txCounter.Add(ctx, 1, attrs)
	r.txDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
}

// RecordBlockHeight records the last committed height.
func (r *TxRecorder) RecordBlockHeight(ctx context.Context, height int64) {
	r.blockHeight.Record(ctx, height)
}
