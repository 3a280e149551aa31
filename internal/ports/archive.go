package ports

import (
	"context"

	"github.com/emiliopalmerini/runlog/internal/domain"
)

// Archive keeps a local copy of the typed record before it is submitted.
// The copy holds the recognized fields only; unknown keys are dropped and
// steps and batch_size are written as strings.
type Archive interface {
	Write(ctx context.Context, path string, run *domain.TrainingRun) error
	Read(ctx context.Context, path string) (*domain.TrainingRun, error)
}
