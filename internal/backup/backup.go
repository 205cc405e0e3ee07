// Package backup snapshots files before they are overwritten or fed to the
// converter. No live file is ever touched without a successful backup.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"saveforge/internal/fileutil"
	"saveforge/internal/services"
)

// timestampLayout is second-resolution and sorts lexicographically.
const timestampLayout = "20060102-150405"

var now = time.Now

// Manager creates timestamped copies inside a fixed backup directory.
type Manager struct {
	dir string
}

// NewManager constructs a Manager for the given backup directory.
func NewManager(dir string) (*Manager, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "backup", "new", "backup directory required", nil)
	}
	return &Manager{dir: dir}, nil
}

// Dir returns the configured backup directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Backup copies sourceFile into the backup directory as
// <stem>_BACKUP-<timestamp><ext> and returns the backup path. The directory
// is created if absent. Any failure aborts the enclosing write.
func (m *Manager) Backup(sourceFile string) (string, error) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", services.Wrap(services.ErrBackup, "backup", "create directory", m.dir, err)
	}

	base := filepath.Base(sourceFile)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	name := fmt.Sprintf("%s_BACKUP-%s%s", stem, now().Format(timestampLayout), ext)
	dest := filepath.Join(m.dir, name)

	if err := fileutil.CopyFilePreserve(sourceFile, dest); err != nil {
		return "", services.Wrap(services.ErrBackup, "backup", "copy", sourceFile, err)
	}
	return dest, nil
}

// Record describes one existing backup file.
type Record struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// List returns existing backups, newest first. A missing directory yields an
// empty list rather than an error.
func (m *Manager) List() ([]Record, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.Contains(entry.Name(), "_BACKUP-") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		records = append(records, Record{
			Path:    filepath.Join(m.dir, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Path > records[j].Path
	})
	return records, nil
}
