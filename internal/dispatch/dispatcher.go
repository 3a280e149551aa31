// Package dispatch archives a training run locally and submits it as a new
// row of the remote database.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/emiliopalmerini/runlog/internal/domain"
	"github.com/emiliopalmerini/runlog/internal/ports"
)

// Config is resolved once at startup and fixed for the dispatcher's life.
type Config struct {
	DatabaseID  string
	ArchivePath string
}

type Dispatcher struct {
	cfg     Config
	archive ports.Archive
	sink    ports.RowSink
	history ports.UploadRepository
	metrics ports.MetricsExporter
	logger  *log.Logger
	now     func() time.Time
}

type Option func(*Dispatcher)

// WithHistory records every submission attempt in repo.
func WithHistory(repo ports.UploadRepository) Option {
	return func(d *Dispatcher) { d.history = repo }
}

func WithMetrics(exporter ports.MetricsExporter) Option {
	return func(d *Dispatcher) { d.metrics = exporter }
}

func WithLogger(logger *log.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithClock replaces time.Now as the source of default timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

func New(cfg Config, archive ports.Archive, sink ports.RowSink, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cfg:     cfg,
		archive: archive,
		sink:    sink,
		logger:  log.New(io.Discard),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch normalizes run, writes it to the archive and then creates the
// remote row. Nothing is written if normalization fails, and nothing is
// submitted if the archive write fails. A failed submission leaves the
// archive in place.
func (d *Dispatcher) Dispatch(ctx context.Context, run *domain.TrainingRun) (*domain.Upload, error) {
	props, err := domain.Normalize(run, d.now())
	if err != nil {
		return nil, err
	}

	if status, replaced := domain.ResolveStatus(run.Status); replaced {
		d.logger.Warn("status substituted", "given", *run.Status, "used", status)
	}

	if err := d.archive.Write(ctx, d.cfg.ArchivePath, run); err != nil {
		return nil, err
	}
	d.logger.Debug("archived training run", "path", d.cfg.ArchivePath)

	upload := &domain.Upload{
		Title:       *run.Title,
		DatabaseID:  d.cfg.DatabaseID,
		ArchivePath: d.cfg.ArchivePath,
		Status:      domain.UploadSubmitted,
	}

	start := time.Now()
	page, submitErr := d.submit(ctx, props)
	elapsed := time.Since(start)

	if submitErr != nil {
		msg := submitErr.Error()
		upload.Status = domain.UploadFailed
		upload.Error = &msg
	} else {
		upload.PageID = &page.ID
		upload.PageURL = &page.URL
	}

	d.recordHistory(ctx, upload)
	d.exportMetrics(ctx, run, props, upload, elapsed)

	if submitErr != nil {
		return upload, submitErr
	}

	d.logger.Info("training run uploaded", "title", upload.Title, "page", page.URL)
	return upload, nil
}

func (d *Dispatcher) submit(ctx context.Context, props domain.Properties) (*domain.Page, error) {
	page, err := d.sink.CreateRow(ctx, d.cfg.DatabaseID, props)
	if err != nil {
		if !errors.Is(err, domain.ErrUpload) {
			err = fmt.Errorf("%w: %v", domain.ErrUpload, err)
		}
		return nil, err
	}
	if page == nil {
		page = &domain.Page{}
	}
	return page, nil
}

func (d *Dispatcher) recordHistory(ctx context.Context, upload *domain.Upload) {
	if d.history == nil {
		return
	}
	if err := d.history.Create(ctx, upload); err != nil {
		d.logger.Warn("failed to record upload history", "err", err)
	}
}

func (d *Dispatcher) exportMetrics(ctx context.Context, run *domain.TrainingRun, props domain.Properties, upload *domain.Upload, elapsed time.Duration) {
	if d.metrics == nil {
		return
	}

	status, _ := domain.ResolveStatus(run.Status)
	m := &ports.UploadMetrics{
		Title:      upload.Title,
		Status:     string(status),
		Models:     run.Model,
		Submitted:  upload.Status == domain.UploadSubmitted,
		LossA:      numberOf(props, domain.ColumnLossA),
		LossB:      numberOf(props, domain.ColumnLossB),
		LossC:      numberOf(props, domain.ColumnLossC),
		AP:         numberOf(props, domain.ColumnAP),
		Epochs:     int64(numberOf(props, domain.ColumnEpoch)),
		DurationMs: elapsed.Milliseconds(),
	}
	if err := d.metrics.ExportUploadMetrics(ctx, m); err != nil {
		d.logger.Warn("failed to export metrics", "err", err)
	}
}

func numberOf(props domain.Properties, column string) float64 {
	v, ok := props.Get(column)
	if !ok {
		return 0
	}
	if n, ok := v.(domain.NumberValue); ok {
		return n.Number
	}
	return 0
}
