package uesave

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"saveforge/internal/services"
)

// ContainerExt is the proprietary save container extension.
const ContainerExt = ".sav"

// DocumentExt is the structured document extension.
const DocumentExt = ".json"

// Executor abstracts command execution for testability. Run returns the
// combined stdout and stderr of the process.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (string, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps uesave CLI interactions.
type Client struct {
	binary string
	exec   Executor
}

// New constructs a uesave client for the configured executable path.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, services.Wrap(services.ErrConfiguration, "uesave", "new", "converter path required", nil)
	}
	client := &Client{binary: binary, exec: commandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// checkExecutable verifies the configured path resolves to an executable
// before anything is invoked, so a bad path never partially modifies files.
func (c *Client) checkExecutable() error {
	info, err := os.Stat(c.binary)
	if err != nil {
		return services.Wrap(services.ErrNotFound, "uesave", "resolve", c.binary, err)
	}
	if info.IsDir() || info.Mode().Perm()&0o111 == 0 {
		return services.Wrap(services.ErrNotFound, "uesave", "resolve",
			fmt.Sprintf("%s is not an executable", c.binary), nil)
	}
	return nil
}

// ToDocument converts a container into its document form and returns the
// document path, derived from the container path (same stem, .json).
func (c *Client) ToDocument(ctx context.Context, containerPath string) (string, error) {
	if containerPath == "" {
		return "", errors.New("container path required")
	}
	if err := c.checkExecutable(); err != nil {
		return "", err
	}

	documentPath := swapExt(containerPath, DocumentExt)
	args := []string{"to-json", "-i", containerPath, "-o", documentPath}
	output, err := c.exec.Run(ctx, c.binary, args)
	if err != nil {
		// The partially written output file is left in place for inspection.
		return "", services.Wrap(services.ErrExternalTool, "uesave", "to-json", strings.TrimSpace(output), err)
	}
	return documentPath, nil
}

// FromDocument converts a document back into a container and returns the
// container path, derived from the document path (same stem, .sav).
func (c *Client) FromDocument(ctx context.Context, documentPath string) (string, error) {
	if documentPath == "" {
		return "", errors.New("document path required")
	}
	if err := c.checkExecutable(); err != nil {
		return "", err
	}

	containerPath := swapExt(documentPath, ContainerExt)
	args := []string{"from-json", "-i", documentPath, "-o", containerPath}
	output, err := c.exec.Run(ctx, c.binary, args)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "uesave", "from-json", strings.TrimSpace(output), err)
	}
	return containerPath, nil
}

func swapExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("run %s: %w", filepath.Base(binary), err)
	}
	return string(output), nil
}
