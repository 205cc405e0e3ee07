package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	err := Wrap(ErrBackup, "backup", "copy", "disk full", errors.New("no space left"))
	if !errors.Is(err, ErrBackup) {
		t.Fatalf("expected backup marker, got %v", err)
	}
	want := "backup failure: backup: copy: disk full: no space left"
	if err.Error() != want {
		t.Fatalf("unexpected message: got %q, want %q", err.Error(), want)
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := Wrap(nil, "uesave", "convert", "", nil)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected external tool fallback, got %v", err)
	}
}

func TestFatalClassification(t *testing.T) {
	if !Fatal(Wrap(ErrParse, "catalog", "load", "bad yaml", nil)) {
		t.Fatal("parse failures are fatal")
	}
	if Fatal(Wrap(ErrValidation, "catalog", "validate", "", nil)) {
		t.Fatal("validation failures are recoverable")
	}
	if Fatal(Wrap(ErrBackup, "backup", "copy", "", nil)) {
		t.Fatal("backup failures abort one write, not the session")
	}
}
