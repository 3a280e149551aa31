package otel

// Config holds OTEL exporter configuration.
type Config struct {
	Endpoint string `envconfig:"RUNLOG_OTEL_ENDPOINT"`
	Enabled  bool   `envconfig:"RUNLOG_OTEL_ENABLED" default:"false"`
	Insecure bool   `envconfig:"RUNLOG_OTEL_INSECURE" default:"false"`
}
