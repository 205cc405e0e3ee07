package config

import (
	"fmt"
	"regexp"

	"saveforge/internal/services"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks settings that parsed but could still be unusable.
func (c *Config) Validate() error {
	if c.Catalog.MappingPath == "" {
		return services.Wrap(services.ErrConfiguration, "config", "validate", "catalog.mapping_path must not be empty", nil)
	}
	if c.Paths.BackupDir == "" {
		return services.Wrap(services.ErrConfiguration, "config", "validate", "paths.backup_dir must not be empty", nil)
	}
	if c.UI.Transparency < 0 || c.UI.Transparency > 1 {
		return services.Wrap(services.ErrConfiguration, "config", "validate",
			fmt.Sprintf("ui.transparency %v outside 0..1", c.UI.Transparency), nil)
	}
	if c.UI.BackgroundColor != "" && !hexColorPattern.MatchString(c.UI.BackgroundColor) {
		return services.Wrap(services.ErrConfiguration, "config", "validate",
			fmt.Sprintf("ui.background_color %q is not #RRGGBB", c.UI.BackgroundColor), nil)
	}
	return nil
}
