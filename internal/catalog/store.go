package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"saveforge/internal/services"
)

// mappingFile is the on-disk shape of the catalog source.
type mappingFile struct {
	Items []FieldDefinition `yaml:"items"`
}

// Load parses the declarative mapping source. A structurally broken source
// is fatal for session startup.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrParse, "catalog", "load", path, err)
	}

	var mapping mappingFile
	if err := yaml.Unmarshal(data, &mapping); err != nil {
		return nil, services.Wrap(services.ErrParse, "catalog", "load", path, err)
	}

	for i, item := range mapping.Items {
		if strings.TrimSpace(item.Name) == "" {
			return nil, services.Wrap(services.ErrParse, "catalog", "load",
				fmt.Sprintf("item %d missing name", i), nil)
		}
		if strings.TrimSpace(item.SaveKey) == "" {
			return nil, services.Wrap(services.ErrParse, "catalog", "load",
				fmt.Sprintf("item %q missing save_key", item.Name), nil)
		}
		if strings.TrimSpace(item.Category) == "" {
			return nil, services.Wrap(services.ErrParse, "catalog", "load",
				fmt.Sprintf("item %q missing category", item.Name), nil)
		}
	}

	return &Catalog{Items: mapping.Items, sourcePath: path}, nil
}

// Save persists the catalog back to its source file.
func (c *Catalog) Save() error {
	if c.sourcePath == "" {
		return services.Wrap(services.ErrConfiguration, "catalog", "save", "catalog has no source path", nil)
	}
	data, err := yaml.Marshal(mappingFile{Items: c.Items})
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := os.WriteFile(c.sourcePath, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

// Repair appends the default subcategory token to every invalid definition
// and persists the corrected catalog. The returned flag tells the hosting
// shell a restart is required: derived indices built from the old catalog
// must not be reused.
func (c *Catalog) Repair(invalid []FieldDefinition) (requiresRestart bool, err error) {
	if len(invalid) == 0 {
		return false, nil
	}

	bad := make(map[string]struct{}, len(invalid))
	for _, item := range invalid {
		bad[item.SaveKey] = struct{}{}
	}

	for i := range c.Items {
		if _, ok := bad[c.Items[i].SaveKey]; !ok {
			continue
		}
		if strings.Contains(c.Items[i].Category, categorySeparator) {
			continue
		}
		c.Items[i].Category += categorySeparator + DefaultSubcategory
	}

	if err := c.Save(); err != nil {
		return false, services.Wrap(services.ErrValidation, "catalog", "repair", "persist corrected catalog", err)
	}
	return true, nil
}

// WriteValidationLog writes a deterministic listing of invalid definitions,
// replacing any previous log.
func WriteValidationLog(invalid []FieldDefinition, logPath string) error {
	var sb strings.Builder
	sb.WriteString("Missing subcategories detected:\n")
	for _, item := range invalid {
		fmt.Fprintf(&sb, "- %s (category: %s)\n", item.Name, item.Category)
	}
	if err := os.WriteFile(logPath, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write validation log: %w", err)
	}
	return nil
}
