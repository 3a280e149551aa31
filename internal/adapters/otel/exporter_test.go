package otel

import (
	"context"
	"errors"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/emiliopalmerini/runlog/internal/ports"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func TestInstruments_RecordSubmitted(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	inst, err := newInstruments(provider.Meter("test"))
	if err != nil {
		t.Fatalf("newInstruments: %v", err)
	}

	inst.record(context.Background(), &ports.UploadMetrics{
		Title:      "run",
		Status:     "완료",
		Models:     []string{"ResNet50"},
		Submitted:  true,
		LossA:      0.1,
		LossB:      0.2,
		LossC:      0.3,
		AP:         0.87,
		Epochs:     50,
		DurationMs: 120,
	})

	data := collect(t, reader)

	uploads, ok := data["runlog_uploads_total"].(metricdata.Sum[int64])
	if !ok || len(uploads.DataPoints) != 1 || uploads.DataPoints[0].Value != 1 {
		t.Errorf("uploads_total = %#v", data["runlog_uploads_total"])
	}
	loss, ok := data["runlog_run_loss"].(metricdata.Histogram[float64])
	if !ok || len(loss.DataPoints) != 3 {
		t.Errorf("run_loss = %#v", data["runlog_run_loss"])
	}
	if _, ok := data["runlog_run_average_precision"]; !ok {
		t.Error("missing runlog_run_average_precision")
	}
}

func TestInstruments_RecordFailedSkipsScores(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	inst, err := newInstruments(provider.Meter("test"))
	if err != nil {
		t.Fatalf("newInstruments: %v", err)
	}
	inst.record(context.Background(), &ports.UploadMetrics{Title: "run", Status: "진행중"})

	data := collect(t, reader)
	if _, ok := data["runlog_uploads_total"]; !ok {
		t.Error("failed upload should still be counted")
	}
	if _, ok := data["runlog_run_loss"]; ok {
		t.Error("failed upload should not record loss")
	}
}

func TestNewExporter_Disabled(t *testing.T) {
	_, err := NewExporter(context.Background(), Config{Enabled: false, Endpoint: "localhost:4317"})
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("err = %v, want ErrDisabled", err)
	}
	_, err = NewExporter(context.Background(), Config{Enabled: true})
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("missing endpoint: err = %v, want ErrDisabled", err)
	}
}

func TestNew_FallsBackToNoOp(t *testing.T) {
	exp, err := New(context.Background(), Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := exp.(*NoOpExporter); !ok {
		t.Errorf("New returned %T, want *NoOpExporter", exp)
	}
	if err := exp.ExportUploadMetrics(context.Background(), &ports.UploadMetrics{}); err != nil {
		t.Errorf("ExportUploadMetrics: %v", err)
	}
	if err := exp.Close(context.Background()); err != nil {
		t.Errorf("Close: %v", err)
	}
}
