package main

import (
	"fmt"
	"log/slog"
	"strings"

	"saveforge/internal/backup"
	"saveforge/internal/catalog"
	"saveforge/internal/config"
	"saveforge/internal/history"
	"saveforge/internal/logging"
	"saveforge/internal/services"
	"saveforge/internal/services/uesave"
	"saveforge/internal/session"
)

// commandContext lazily builds the shared collaborators commands need.
type commandContext struct {
	configFlag *string

	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// requestedConfigPath returns the raw --config value, empty when unset.
func (c *commandContext) requestedConfigPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	path := ""
	if c.configFlag != nil {
		path = strings.TrimSpace(*c.configFlag)
	}
	cfg, resolvedPath, _, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	c.cfgPath = resolvedPath
	return cfg, nil
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return nil, err
	}
	c.logger = logger
	return logger, nil
}

// loadCatalog loads the catalog and runs the startup passes: category
// validation (writing the validation log when findings exist) and, when
// enabled, the master-list patch.
func (c *commandContext) loadCatalog() (*catalog.Catalog, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(cfg.Catalog.MappingPath)
	if err != nil {
		return nil, err
	}

	if invalid := cat.Validate(); len(invalid) > 0 {
		if logErr := catalog.WriteValidationLog(invalid, cfg.Catalog.ValidationLog); logErr != nil {
			logger.Warn("failed to write validation log", logging.Error(logErr))
		}
		return nil, services.Wrap(services.ErrValidation, "catalog", "validate",
			fmt.Sprintf("%d items missing subcategories (see %s); run 'saveforge catalog validate --fix'",
				len(invalid), cfg.Catalog.ValidationLog), nil)
	}

	if cfg.Catalog.AllowUpdating {
		if _, err := cat.PatchWithMasterList(cfg.Catalog.MasterListPath, logger); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

// newSession wires a full edit session from configuration.
func (c *commandContext) newSession() (*session.Session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}

	cat, err := c.loadCatalog()
	if err != nil {
		return nil, err
	}

	converter, err := uesave.New(cfg.Converter.UesavePath)
	if err != nil {
		return nil, err
	}

	backups, err := backup.NewManager(cfg.Paths.BackupDir)
	if err != nil {
		return nil, err
	}

	// The journal is best-effort: an unopenable database degrades to an
	// unjournaled session rather than blocking edits.
	var journal *history.Store
	if cfg.Paths.HistoryDB != "" {
		journal, err = history.Open(cfg.Paths.HistoryDB)
		if err != nil {
			logger.Warn("history journal unavailable", logging.Error(err))
			journal = nil
		}
	}

	return session.New(session.Options{
		Catalog:   cat,
		Converter: converter,
		Backups:   backups,
		Journal:   journal,
		Logger:    logger,
	})
}
