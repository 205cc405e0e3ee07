package main

import (
	"os"
	"path/filepath"
	"testing"

	"saveforge/internal/config"
)

func TestConfigValidateAndSet(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "is valid")

	out, _, err = runCLI(t, env.configPath, "config", "set", "ui.transparency", "0.25")
	if err != nil {
		t.Fatalf("config set: %v", err)
	}
	requireContains(t, out, "Set ui.transparency")

	cfg, _, _, err := config.Load(env.configPath)
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if cfg.UI.Transparency != 0.25 {
		t.Fatalf("transparency = %v, want 0.25", cfg.UI.Transparency)
	}

	if _, _, err := runCLI(t, env.configPath, "config", "set", "ui.transparency", "2"); err == nil {
		t.Fatal("expected out-of-range transparency to be rejected")
	}
	if _, _, err := runCLI(t, env.configPath, "config", "set", "no.such_key", "1"); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "fresh", "config.toml")

	out, _, err := runCLI(t, target, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected sample config at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, target, "config", "init"); err == nil {
		t.Fatal("expected init without --force to refuse overwriting")
	}
	if _, _, err := runCLI(t, target, "config", "init", "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}
}
