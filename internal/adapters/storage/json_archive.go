package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/emiliopalmerini/runlog/internal/domain"
)

const archiveIndent = "    "

// JSONArchive writes training runs as indented UTF-8 JSON files.
type JSONArchive struct{}

func NewJSONArchive() *JSONArchive {
	return &JSONArchive{}
}

// Write replaces the file at path with run. Non-ASCII text is written as-is.
func (a *JSONArchive) Write(ctx context.Context, path string, run *domain.TrainingRun) error {
	data, err := Encode(run)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrFileWrite, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: failed to create directory %s: %v", domain.ErrFileWrite, dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrFileWrite, err)
	}
	return nil
}

func (a *JSONArchive) Read(ctx context.Context, path string) (*domain.TrainingRun, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}
	return domain.DecodeTrainingRun(data)
}

// Encode renders run in the archive format.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", archiveIndent)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return buf.Bytes(), nil
}
