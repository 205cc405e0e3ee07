package catalog

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"saveforge/internal/logging"
)

// MasterListEntry is one parsed line of the external quantity list.
type MasterListEntry struct {
	Quantity int64
	Name     string
}

// ParseMasterList reads "<integer> <item name>" lines. Lines that do not
// match are returned as warnings, not errors.
func ParseMasterList(path string) ([]MasterListEntry, []string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	var entries []MasterListEntry
	var warnings []string

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		quantityField, name, ok := strings.Cut(line, " ")
		if !ok {
			warnings = append(warnings, fmt.Sprintf("line %d: %q has no quantity field", lineNo, line))
			continue
		}
		quantity, err := strconv.ParseInt(quantityField, 10, 64)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %q does not start with an integer", lineNo, line))
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			warnings = append(warnings, fmt.Sprintf("line %d: %q has no item name", lineNo, line))
			continue
		}
		entries = append(entries, MasterListEntry{Quantity: quantity, Name: name})
	}
	if err := scanner.Err(); err != nil {
		return nil, warnings, fmt.Errorf("read master list: %w", err)
	}
	return entries, warnings, nil
}

// PatchWithMasterList folds quantity hints from the master list into the
// catalog and persists the result. Matching is a linear scan in catalog
// order: the first definition whose name contains the master entry's name
// (case-insensitive) wins, and remaining definitions are not considered for
// that entry. A missing list file degrades to a warning; enrichment is
// simply skipped.
func (c *Catalog) PatchWithMasterList(path string, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	entries, warnings, err := ParseMasterList(path)
	if err != nil {
		if os.IsNotExist(err) {
			warning := fmt.Sprintf("master list %q not found; skipping enrichment", path)
			logger.Warn("master list missing", logging.String("path", path))
			return append(warnings, warning), nil
		}
		return warnings, err
	}
	for _, warning := range warnings {
		logger.Warn("master list line skipped", logging.String("detail", warning))
	}

	patched := 0
	for _, entry := range entries {
		needle := strings.ToLower(entry.Name)
		for i := range c.Items {
			if !strings.Contains(strings.ToLower(c.Items[i].Name), needle) {
				continue
			}
			quantity := entry.Quantity
			c.Items[i].Quantity = &quantity
			patched++
			break
		}
	}

	if patched > 0 {
		if err := c.Save(); err != nil {
			return warnings, err
		}
	}
	logger.Info("master list patch complete",
		logging.Int("entries", len(entries)),
		logging.Int("patched", patched),
		logging.Int("warnings", len(warnings)))
	return warnings, nil
}
