package ports

import (
	"context"

	"github.com/emiliopalmerini/runlog/internal/domain"
)

// RowSink creates rows in a remote database with a pre-existing schema.
type RowSink interface {
	CreateRow(ctx context.Context, databaseID string, props domain.Properties) (*domain.Page, error)
}
