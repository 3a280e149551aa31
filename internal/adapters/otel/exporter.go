package otel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/emiliopalmerini/runlog/internal/ports"
)

const (
	serviceName    = "runlog"
	serviceVersion = "1.0.0"
)

// ErrDisabled is returned by NewExporter when export is not configured.
var ErrDisabled = errors.New("OTEL exporter is disabled or endpoint not configured")

// Exporter exports upload metrics to an OTEL Collector.
type Exporter struct {
	provider    *sdkmetric.MeterProvider
	instruments *instruments
}

type instruments struct {
	uploadsTotal  metric.Int64Counter
	lossHist      metric.Float64Histogram
	apHist        metric.Float64Histogram
	epochsHist    metric.Int64Histogram
	uploadLatency metric.Int64Histogram
}

// New returns an OTLP exporter when cfg enables one, and a no-op otherwise.
func New(ctx context.Context, cfg Config) (ports.MetricsExporter, error) {
	exp, err := NewExporter(ctx, cfg)
	if errors.Is(err, ErrDisabled) {
		return NewNoOpExporter(), nil
	}
	if err != nil {
		return nil, err
	}
	return exp, nil
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, ErrDisabled
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	inst, err := newInstruments(provider.Meter(serviceName))
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, err
	}

	return &Exporter{provider: provider, instruments: inst}, nil
}

func newInstruments(meter metric.Meter) (*instruments, error) {
	uploadsTotal, err := meter.Int64Counter(
		"runlog_uploads_total",
		metric.WithDescription("Training runs dispatched to the remote database"),
		metric.WithUnit("{upload}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating uploads counter: %w", err)
	}

	lossHist, err := meter.Float64Histogram(
		"runlog_run_loss",
		metric.WithDescription("Reported loss per slot"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating loss histogram: %w", err)
	}

	apHist, err := meter.Float64Histogram(
		"runlog_run_average_precision",
		metric.WithDescription("Reported average precision"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating AP histogram: %w", err)
	}

	epochsHist, err := meter.Int64Histogram(
		"runlog_run_epochs",
		metric.WithDescription("Epochs per training run"),
		metric.WithUnit("{epoch}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating epochs histogram: %w", err)
	}

	uploadLatency, err := meter.Int64Histogram(
		"runlog_upload_duration_ms",
		metric.WithDescription("Time spent creating the remote row"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating upload latency histogram: %w", err)
	}

	return &instruments{
		uploadsTotal:  uploadsTotal,
		lossHist:      lossHist,
		apHist:        apHist,
		epochsHist:    epochsHist,
		uploadLatency: uploadLatency,
	}, nil
}

// ExportUploadMetrics records one upload outcome. Scores are only recorded
// for submitted rows.
func (e *Exporter) ExportUploadMetrics(ctx context.Context, m *ports.UploadMetrics) error {
	e.instruments.record(ctx, m)
	return nil
}

func (i *instruments) record(ctx context.Context, m *ports.UploadMetrics) {
	outcome := "failed"
	if m.Submitted {
		outcome = "submitted"
	}
	attrs := []attribute.KeyValue{
		attribute.String("run_status", m.Status),
		attribute.String("models", strings.Join(m.Models, ",")),
	}

	i.uploadsTotal.Add(ctx, 1, metric.WithAttributes(append(attrs, attribute.String("outcome", outcome))...))
	i.uploadLatency.Record(ctx, m.DurationMs, metric.WithAttributes(attribute.String("outcome", outcome)))
	if !m.Submitted {
		return
	}

	opt := metric.WithAttributes(attrs...)
	for slot, loss := range map[string]float64{"A": m.LossA, "B": m.LossB, "C": m.LossC} {
		i.lossHist.Record(ctx, loss, metric.WithAttributes(append(attrs, attribute.String("slot", slot))...))
	}
	i.apHist.Record(ctx, m.AP, opt)
	i.epochsHist.Record(ctx, m.Epochs, opt)
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
