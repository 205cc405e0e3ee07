// Package catalog manages the declarative list of editable save fields:
// loading, category validation and repair, and enrichment from an external
// master quantity list.
package catalog

import (
	"sort"
	"strings"
)

// DefaultSubcategory is appended to categories that lack a subcategory
// during repair.
const DefaultSubcategory = "Default"

// categorySeparator splits a category into its main and sub parts.
const categorySeparator = "."

// FieldDefinition is one editable counter in the save document.
type FieldDefinition struct {
	Name     string `yaml:"name"`
	SaveKey  string `yaml:"save_key"`
	Category string `yaml:"category"`
	Quantity *int64 `yaml:"quantity,omitempty"`
}

// SplitCategory returns the main and sub category parts. ok is false when
// the category has no separator.
func (f FieldDefinition) SplitCategory() (main, sub string, ok bool) {
	main, sub, ok = strings.Cut(f.Category, categorySeparator)
	return main, sub, ok
}

// Catalog is the ordered collection of field definitions plus the path it
// was loaded from, so repairs and patches can be persisted back.
type Catalog struct {
	Items []FieldDefinition

	sourcePath string
}

// SourcePath returns the file the catalog was loaded from.
func (c *Catalog) SourcePath() string {
	return c.sourcePath
}

// Validate returns every definition whose category lacks the separator.
func (c *Catalog) Validate() []FieldDefinition {
	var invalid []FieldDefinition
	for _, item := range c.Items {
		if !strings.Contains(item.Category, categorySeparator) {
			invalid = append(invalid, item)
		}
	}
	return invalid
}

// CategoryIndex derives the main-category to sorted-subcategory mapping.
// Definitions without a separator are skipped; they are surfaced by
// Validate instead.
func (c *Catalog) CategoryIndex() map[string][]string {
	seen := make(map[string]map[string]struct{})
	for _, item := range c.Items {
		main, sub, ok := item.SplitCategory()
		if !ok {
			continue
		}
		if seen[main] == nil {
			seen[main] = make(map[string]struct{})
		}
		seen[main][sub] = struct{}{}
	}

	index := make(map[string][]string, len(seen))
	for main, subs := range seen {
		sorted := make([]string, 0, len(subs))
		for sub := range subs {
			sorted = append(sorted, sub)
		}
		sort.Strings(sorted)
		index[main] = sorted
	}
	return index
}

// FieldsInCategory returns the definitions whose category equals main.sub,
// in catalog order.
func (c *Catalog) FieldsInCategory(main, sub string) []FieldDefinition {
	key := main + categorySeparator + sub
	var fields []FieldDefinition
	for _, item := range c.Items {
		if item.Category == key {
			fields = append(fields, item)
		}
	}
	return fields
}
