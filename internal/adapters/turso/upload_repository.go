package turso

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/emiliopalmerini/runlog/internal/domain"
	"github.com/emiliopalmerini/runlog/internal/ports"
	"github.com/emiliopalmerini/runlog/internal/util"
)

// createdAtLayout has fixed-width fractions so rows sort by created_at text.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

const uploadColumns = `id, title, database_id, archive_path, status, page_id, page_url, error, created_at`

type UploadRepository struct {
	db *sql.DB
}

func NewUploadRepository(db *sql.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

// Create stores upload, assigning an ID and creation time when unset.
func (r *UploadRepository) Create(ctx context.Context, upload *domain.Upload) error {
	if upload.ID == "" {
		upload.ID = uuid.NewString()
	}
	if upload.CreatedAt.IsZero() {
		upload.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `INSERT INTO uploads (`+uploadColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		upload.ID,
		upload.Title,
		upload.DatabaseID,
		upload.ArchivePath,
		string(upload.Status),
		util.NullStringPtr(upload.PageID),
		util.NullStringPtr(upload.PageURL),
		util.NullStringPtr(upload.Error),
		upload.CreatedAt.UTC().Format(createdAtLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to create upload: %w", err)
	}
	return nil
}

func (r *UploadRepository) GetByID(ctx context.Context, id string) (*domain.Upload, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+uploadColumns+` FROM uploads WHERE id = ?`, id)
	upload, err := scanUpload(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get upload: %w", err)
	}
	return upload, nil
}

func (r *UploadRepository) List(ctx context.Context, opts ports.ListUploadsOptions) ([]*domain.Upload, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + uploadColumns + ` FROM uploads`
	args := []any{}
	if opts.Status != nil {
		query += ` WHERE status = ?`
		args = append(args, string(*opts.Status))
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var uploads []*domain.Upload
	for rows.Next() {
		upload, err := scanUpload(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan upload: %w", err)
		}
		uploads = append(uploads, upload)
	}
	return uploads, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUpload(s scanner) (*domain.Upload, error) {
	var (
		u                      domain.Upload
		status, createdAt      string
		pageID, pageURL, upErr sql.NullString
	)
	if err := s.Scan(&u.ID, &u.Title, &u.DatabaseID, &u.ArchivePath, &status, &pageID, &pageURL, &upErr, &createdAt); err != nil {
		return nil, err
	}

	u.Status = domain.UploadStatus(status)
	u.PageID = util.NullStringToPtr(pageID)
	u.PageURL = util.NullStringToPtr(pageURL)
	u.Error = util.NullStringToPtr(upErr)
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		u.CreatedAt = t
	}
	return &u, nil
}
