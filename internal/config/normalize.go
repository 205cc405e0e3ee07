package config

import "strings"

// normalize expands user paths and trims whitespace so the rest of the core
// never deals with "~" or stray spaces.
func (c *Config) normalize() error {
	c.Converter.UesavePath = strings.TrimSpace(c.Converter.UesavePath)
	if c.Converter.UesavePath != "" {
		expanded, err := expandPath(c.Converter.UesavePath)
		if err != nil {
			return err
		}
		c.Converter.UesavePath = expanded
	}

	c.Catalog.MappingPath = strings.TrimSpace(c.Catalog.MappingPath)
	c.Catalog.MasterListPath = strings.TrimSpace(c.Catalog.MasterListPath)
	c.Catalog.ValidationLog = strings.TrimSpace(c.Catalog.ValidationLog)
	c.Paths.BackupDir = strings.TrimSpace(c.Paths.BackupDir)
	c.Paths.LogDir = strings.TrimSpace(c.Paths.LogDir)
	c.Paths.HistoryDB = strings.TrimSpace(c.Paths.HistoryDB)
	c.UI.BackgroundColor = strings.TrimSpace(c.UI.BackgroundColor)
	c.Logging.Level = strings.TrimSpace(c.Logging.Level)
	c.Logging.Format = strings.TrimSpace(c.Logging.Format)
	return nil
}
