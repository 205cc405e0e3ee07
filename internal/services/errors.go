package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrParse marks malformed catalog, document, or settings input. Fatal
	// at load time: the session cannot proceed without the parsed form.
	ErrParse = errors.New("parse failure")
	// ErrValidation marks an invalid catalog category. Recoverable via the
	// repair workflow.
	ErrValidation = errors.New("validation failure")
	// ErrBackup marks a failed pre-write snapshot. The enclosing write is
	// aborted; no overwrite happens without a successful backup.
	ErrBackup = errors.New("backup failure")
	// ErrNotFound marks a configured path that does not resolve, most
	// importantly the converter executable.
	ErrNotFound = errors.New("not found")
	// ErrExternalTool marks a converter invocation that started but exited
	// non-zero; the wrapped error carries captured diagnostics.
	ErrExternalTool = errors.New("external tool error")
	// ErrValueFormat marks a user-entered value that is not a valid integer.
	ErrValueFormat = errors.New("value format error")
	// ErrConfiguration marks settings that parsed but are unusable.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Fatal reports whether the error means the session cannot continue.
func Fatal(err error) bool {
	return errors.Is(err, ErrParse) || errors.Is(err, ErrConfiguration)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
