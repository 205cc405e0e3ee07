package uesave

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"saveforge/internal/services"
)

type fakeExecutor struct {
	binary string
	args   []string
	output string
	err    error
	calls  int
}

func (f *fakeExecutor) Run(ctx context.Context, binary string, args []string) (string, error) {
	f.calls++
	f.binary = binary
	f.args = append([]string(nil), args...)
	return f.output, f.err
}

// writeFakeBinary creates an executable file standing in for uesave.
func writeFakeBinary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "uesave")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := New("  "); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestToDocumentBuildsArguments(t *testing.T) {
	binary := writeFakeBinary(t)
	fake := &fakeExecutor{}
	client, err := New(binary, WithExecutor(fake))
	if err != nil {
		t.Fatal(err)
	}

	docPath, err := client.ToDocument(context.Background(), "/saves/slot1.sav")
	if err != nil {
		t.Fatal(err)
	}
	if docPath != "/saves/slot1.json" {
		t.Fatalf("unexpected document path %q", docPath)
	}
	want := []string{"to-json", "-i", "/saves/slot1.sav", "-o", "/saves/slot1.json"}
	if strings.Join(fake.args, " ") != strings.Join(want, " ") {
		t.Fatalf("unexpected args %v, want %v", fake.args, want)
	}
	if fake.binary != binary {
		t.Fatalf("unexpected binary %q", fake.binary)
	}
}

func TestFromDocumentBuildsArguments(t *testing.T) {
	binary := writeFakeBinary(t)
	fake := &fakeExecutor{}
	client, err := New(binary, WithExecutor(fake))
	if err != nil {
		t.Fatal(err)
	}

	containerPath, err := client.FromDocument(context.Background(), "/saves/slot1.json")
	if err != nil {
		t.Fatal(err)
	}
	if containerPath != "/saves/slot1.sav" {
		t.Fatalf("unexpected container path %q", containerPath)
	}
	want := []string{"from-json", "-i", "/saves/slot1.json", "-o", "/saves/slot1.sav"}
	if strings.Join(fake.args, " ") != strings.Join(want, " ") {
		t.Fatalf("unexpected args %v, want %v", fake.args, want)
	}
}

func TestMissingExecutableFailsBeforeInvocation(t *testing.T) {
	fake := &fakeExecutor{}
	client, err := New(filepath.Join(t.TempDir(), "absent"), WithExecutor(fake))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := client.ToDocument(context.Background(), "/saves/slot1.sav"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if _, err := client.FromDocument(context.Background(), "/saves/slot1.json"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if fake.calls != 0 {
		t.Fatalf("converter must not be invoked with a bad path, got %d calls", fake.calls)
	}
}

func TestNonExecutableFileRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uesave")
	if err := os.WriteFile(path, []byte("not a binary"), 0o644); err != nil {
		t.Fatal(err)
	}
	client, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.ToDocument(context.Background(), "/saves/slot1.sav"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestConversionFailureCarriesDiagnostics(t *testing.T) {
	binary := writeFakeBinary(t)
	fake := &fakeExecutor{output: "error: invalid GVAS header\n", err: errors.New("exit status 1")}
	client, err := New(binary, WithExecutor(fake))
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.ToDocument(context.Background(), "/saves/slot1.sav")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid GVAS header") {
		t.Fatalf("expected captured diagnostics in error, got %q", err.Error())
	}
}
