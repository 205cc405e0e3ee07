package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"saveforge/internal/services"
)

//go:embed sample_config.toml
var sampleConfig string

// Converter contains the external save converter settings.
type Converter struct {
	UesavePath string `toml:"uesave_path"`
}

// Catalog contains the editable-field catalog settings.
type Catalog struct {
	MappingPath    string `toml:"mapping_path"`
	MasterListPath string `toml:"master_list_path"`
	AllowUpdating  bool   `toml:"allow_updating"`
	ValidationLog  string `toml:"validation_log"`
}

// Paths contains directory configuration.
type Paths struct {
	BackupDir string `toml:"backup_dir"`
	LogDir    string `toml:"log_dir"`
	HistoryDB string `toml:"history_db"`
}

// UI contains presentation-layer settings. The core only stores and
// round-trips them; they are consumed by the hosting shell.
type UI struct {
	Transparency    float64 `toml:"transparency"`
	BackgroundColor string  `toml:"background_color"`
	DarkMode        bool    `toml:"dark_mode"`
}

// Logging contains log output configuration.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for saveforge.
type Config struct {
	Converter Converter `toml:"converter"`
	Catalog   Catalog   `toml:"catalog"`
	Paths     Paths     `toml:"paths"`
	UI        UI        `toml:"ui"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/saveforge/config.toml")
}

// Load locates, parses, and validates a configuration file. A missing file
// yields built-in defaults; missing individual keys keep their per-key
// defaults because decoding happens over the default snapshot.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, services.Wrap(services.ErrParse, "config", "load", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("saveforge.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the backup and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.BackupDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Update sets a single settings key, persists the full configuration to
// path, and returns the resulting snapshot. Recognized keys are the dotted
// TOML names, e.g. "converter.uesave_path" or "ui.transparency".
func (c *Config) Update(path, key, value string) (*Config, error) {
	next := *c

	switch strings.ToLower(strings.TrimSpace(key)) {
	case "converter.uesave_path":
		next.Converter.UesavePath = value
	case "catalog.mapping_path":
		next.Catalog.MappingPath = value
	case "catalog.master_list_path":
		next.Catalog.MasterListPath = value
	case "catalog.allow_updating":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "config", "update", key, err)
		}
		next.Catalog.AllowUpdating = parsed
	case "catalog.validation_log":
		next.Catalog.ValidationLog = value
	case "paths.backup_dir":
		next.Paths.BackupDir = value
	case "paths.log_dir":
		next.Paths.LogDir = value
	case "paths.history_db":
		next.Paths.HistoryDB = value
	case "ui.transparency":
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "config", "update", key, err)
		}
		next.UI.Transparency = parsed
	case "ui.background_color":
		next.UI.BackgroundColor = value
	case "ui.dark_mode":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "config", "update", key, err)
		}
		next.UI.DarkMode = parsed
	case "logging.level":
		next.Logging.Level = value
	case "logging.format":
		next.Logging.Format = value
	default:
		return nil, services.Wrap(services.ErrConfiguration, "config", "update", fmt.Sprintf("unknown key %q", key), nil)
	}

	if err := next.normalize(); err != nil {
		return nil, err
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}
	if err := next.write(path); err != nil {
		return nil, err
	}
	return &next, nil
}

func (c *Config) write(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
