package domain

import "time"

type UploadStatus string

const (
	UploadSubmitted UploadStatus = "submitted"
	UploadFailed    UploadStatus = "failed"
)

// Upload is one attempt to submit a training run to the remote database.
type Upload struct {
	ID          string
	Title       string
	DatabaseID  string
	ArchivePath string
	Status      UploadStatus
	PageID      *string
	PageURL     *string
	Error       *string
	CreatedAt   time.Time
}

// Page is the row created remotely.
type Page struct {
	ID  string
	URL string
}
