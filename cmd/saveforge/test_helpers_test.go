package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"saveforge/internal/config"
	"saveforge/internal/testsupport"
)

const testMappingYAML = `items:
  - name: Health Potion
    save_key: Potion_Health
    category: Consumables.Potions
  - name: Gold Coin
    save_key: Gold
    category: Currency.Common
`

const testDocumentJSON = `{
  "root": {
    "properties": {
      "InventoryItems_0": {
        "Map": [
          {
            "key": {"Name": "Potion_Health"},
            "value": {"Int": 3}
          },
          {
            "key": {"Name": "Gold"},
            "value": {"Int": 250}
          }
        ]
      }
    }
  }
}
`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, testsupport.WithAllowUpdating(false))
	base := filepath.Dir(cfg.Catalog.MappingPath)

	testsupport.WriteFile(t, base, "mapping.yaml", testMappingYAML)
	testsupport.WriteExecutable(t, base, "uesave")

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[converter]\nuesave_path = %q\n\n"+
			"[catalog]\nmapping_path = %q\nmaster_list_path = %q\nallow_updating = %v\nvalidation_log = %q\n\n"+
			"[paths]\nbackup_dir = %q\nlog_dir = %q\nhistory_db = %q\n",
		cfg.Converter.UesavePath,
		cfg.Catalog.MappingPath,
		cfg.Catalog.MasterListPath,
		cfg.Catalog.AllowUpdating,
		cfg.Catalog.ValidationLog,
		cfg.Paths.BackupDir,
		cfg.Paths.LogDir,
		cfg.Paths.HistoryDB,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
