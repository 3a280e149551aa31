package ports

import "context"

// MetricsExporter exports upload metrics to an external observability system.
type MetricsExporter interface {
	// ExportUploadMetrics records the outcome and scores of one upload.
	ExportUploadMetrics(ctx context.Context, m *UploadMetrics) error
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}

// UploadMetrics is the numeric summary of one dispatched training run.
type UploadMetrics struct {
	Title      string
	Status     string
	Models     []string
	Submitted  bool
	LossA      float64
	LossB      float64
	LossC      float64
	AP         float64
	Epochs     int64
	DurationMs int64
}
