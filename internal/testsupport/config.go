// Package testsupport provides shared fixtures for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"saveforge/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Converter.UesavePath = filepath.Join(base, "uesave")
	cfg.Catalog.MappingPath = filepath.Join(base, "mapping.yaml")
	cfg.Catalog.MasterListPath = filepath.Join(base, "master_list.txt")
	cfg.Catalog.ValidationLog = filepath.Join(base, "missing_subcategories.log")
	cfg.Paths.BackupDir = filepath.Join(base, "Save_Backup")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.HistoryDB = filepath.Join(base, "logs", "history.db")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithUesavePath overrides the converter path on the test config.
func WithUesavePath(path string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Converter.UesavePath = path
	}
}

// WithAllowUpdating toggles the startup patch pass on the test config.
func WithAllowUpdating(allow bool) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Catalog.AllowUpdating = allow
	}
}
