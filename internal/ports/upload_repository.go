package ports

import (
	"context"

	"github.com/emiliopalmerini/runlog/internal/domain"
)

type UploadRepository interface {
	Create(ctx context.Context, upload *domain.Upload) error
	GetByID(ctx context.Context, id string) (*domain.Upload, error)
	List(ctx context.Context, opts ListUploadsOptions) ([]*domain.Upload, error)
}

type ListUploadsOptions struct {
	Limit  int
	Status *domain.UploadStatus
}
