package main

import (
	"os"
	"path/filepath"
	"testing"

	"saveforge/internal/testsupport"
)

func TestGetReadsDocumentValues(t *testing.T) {
	env := setupCLITestEnv(t)
	docPath := testsupport.WriteFile(t, env.baseDir, "slot1.json", testDocumentJSON)

	out, _, err := runCLI(t, env.configPath, "get", docPath, "Potion_Health", "Gold", "Missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	requireContains(t, out, "Potion_Health=3")
	requireContains(t, out, "Gold=250")
	requireContains(t, out, "Missing=\n")
}

func TestSetCommitsDocumentWithBackup(t *testing.T) {
	env := setupCLITestEnv(t)
	docPath := testsupport.WriteFile(t, env.baseDir, "slot1.json", testDocumentJSON)

	out, _, err := runCLI(t, env.configPath, "set", docPath, "Potion_Health=99")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	requireContains(t, out, "Committed 1 edit(s)")

	out, _, err = runCLI(t, env.configPath, "get", docPath, "Potion_Health")
	if err != nil {
		t.Fatalf("get after set: %v", err)
	}
	requireContains(t, out, "Potion_Health=99")

	entries, err := os.ReadDir(env.cfg.Paths.BackupDir)
	if err != nil {
		t.Fatalf("read backup dir: %v", err)
	}
	found := false
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".json" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a document backup in %s", env.cfg.Paths.BackupDir)
	}
}

func TestSetRejectsMalformedEdit(t *testing.T) {
	env := setupCLITestEnv(t)
	docPath := testsupport.WriteFile(t, env.baseDir, "slot1.json", testDocumentJSON)

	_, _, err := runCLI(t, env.configPath, "set", docPath, "Potion_Health")
	if err == nil {
		t.Fatal("expected error for edit without '='")
	}

	_, _, err = runCLI(t, env.configPath, "set", docPath, "Potion_Health=lots")
	if err == nil {
		t.Fatal("expected error for non-integer value")
	}

	out, _, err := runCLI(t, env.configPath, "get", docPath, "Potion_Health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	requireContains(t, out, "Potion_Health=3")
}
