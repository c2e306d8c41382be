package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/panelgrid/internal/model"
)

// backupVersion is written into every export.
const backupVersion = "1"

// Backup is the portable export format of the application config.
type Backup struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
}

// ExportConfig writes config to path as a versioned JSON backup, creating
// parent directories as needed.
func ExportConfig(path string, config model.AppConfig) error {
	backup := Backup{
		Version:   backupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportConfig reads a backup written by ExportConfig. Settings missing from
// the backup keep their defaults; a container without positive extents is
// rejected.
func ImportConfig(path string) (Backup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Backup{}, fmt.Errorf("failed to read backup file: %w", err)
	}

	backup := Backup{Config: model.DefaultAppConfig()}
	if err := json.Unmarshal(data, &backup); err != nil {
		return Backup{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return Backup{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Version != backupVersion {
		return Backup{}, fmt.Errorf("unsupported backup version %q", backup.Version)
	}
	if backup.Config.ContainerWidth <= 0 || backup.Config.ContainerHeight <= 0 {
		return Backup{}, fmt.Errorf("invalid backup file: container %vx%v must be positive",
			backup.Config.ContainerWidth, backup.Config.ContainerHeight)
	}
	if backup.Config.RecentFixtures == nil {
		backup.Config.RecentFixtures = []string{}
	}
	return backup, nil
}
