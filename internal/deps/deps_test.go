package deps

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckUnconfiguredPath(t *testing.T) {
	results := Check([]Requirement{{Name: "uesave", Path: "  "}})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Available {
		t.Fatal("unconfigured path must not be available")
	}
	if results[0].Detail != "path not configured" {
		t.Fatalf("unexpected detail %q", results[0].Detail)
	}
}

func TestCheckMissingFile(t *testing.T) {
	results := Check([]Requirement{{Name: "uesave", Path: filepath.Join(t.TempDir(), "uesave")}})
	if results[0].Available {
		t.Fatal("missing binary must not be available")
	}
}

func TestCheckNonExecutable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uesave")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	results := Check([]Requirement{{Name: "uesave", Path: path}})
	if results[0].Available {
		t.Fatal("non-executable file must not be available")
	}
}

func TestCheckExecutable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uesave")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	results := Check([]Requirement{{Name: "uesave", Path: path, Description: "save converter"}})
	if !results[0].Available {
		t.Fatalf("expected available, got detail %q", results[0].Detail)
	}
}
