package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/emiliopalmerini/runlog/internal/adapters/notion"
	"github.com/emiliopalmerini/runlog/internal/adapters/otel"
	"github.com/emiliopalmerini/runlog/internal/adapters/storage"
	"github.com/emiliopalmerini/runlog/internal/adapters/turso"
	"github.com/emiliopalmerini/runlog/internal/infrastructure/config"
	"github.com/emiliopalmerini/runlog/internal/ports"
)

// AppContext holds all shared dependencies for CLI commands.
type AppContext struct {
	DB      *turso.DB
	Uploads ports.UploadRepository
	Archive ports.Archive
	Sink    ports.RowSink
	Metrics ports.MetricsExporter
}

// NewAppContext creates an AppContext with all dependencies initialized.
// The upload history and metrics exporter are optional: when they cannot be
// set up the failure is logged and uploads proceed without them.
func NewAppContext(ctx context.Context, cfg *config.Config, logger *log.Logger) *AppContext {
	app := &AppContext{
		Archive: storage.NewJSONArchive(),
		Sink:    notion.NewClient(cfg.Notion.Client()),
		Metrics: otel.NewNoOpExporter(),
	}

	db, err := turso.Open(ctx, cfg.Database)
	if err != nil {
		logger.Warn("upload history disabled", "err", err)
	} else {
		app.DB = db
		app.Uploads = turso.NewUploadRepository(db.DB)
	}

	exporter, err := otel.New(ctx, cfg.Otel)
	if err != nil {
		logger.Warn("metrics export disabled", "err", err)
	} else {
		app.Metrics = exporter
	}

	return app
}

// OpenHistory opens only the upload history database.
func OpenHistory(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	db, err := turso.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open upload history: %w", err)
	}
	return &AppContext{DB: db, Uploads: turso.NewUploadRepository(db.DB)}, nil
}

// Close flushes metrics, syncs the history replica and releases the database.
func (a *AppContext) Close(ctx context.Context) error {
	var firstErr error
	if a.Metrics != nil {
		firstErr = a.Metrics.Close(ctx)
	}
	if a.DB != nil {
		if err := a.DB.Sync(); err != nil && firstErr == nil {
			firstErr = err
		}
		if err := a.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
