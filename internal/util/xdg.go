package util

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "runlog"

// GetXDGDataDir returns the XDG data directory for runlog.
// It respects XDG_DATA_HOME if set, otherwise falls back to ~/.local/share/runlog
func GetXDGDataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".local", "share", appName), nil
}
