package savedoc

import (
	"os"
	"strings"

	"saveforge/internal/services"
)

// InventoryPrefix marks the document properties that carry editable
// inventory maps.
const InventoryPrefix = "InventoryItems_"

// Document is the full structured save document plus an index over its
// inventory-style entries.
type Document struct {
	path string
	root *Value

	// index is the aggregate of every matched property's Map entries, in
	// property order then entry order.
	index []*Value
	// inventories are the payload objects whose Map member is replaced on
	// Flush.
	inventories []*Value
}

// isInventoryProperty is the single place that decides whether a property
// carries an inventory map.
func isInventoryProperty(name string, value *Value) bool {
	if !strings.HasPrefix(name, InventoryPrefix) {
		return false
	}
	return value.Get("Map").Kind() == KindArray
}

// Load reads and indexes a document file.
func Load(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrParse, "savedoc", "load", path, err)
	}
	defer file.Close()

	root, err := Parse(file)
	if err != nil {
		return nil, services.Wrap(services.ErrParse, "savedoc", "load", path, err)
	}

	doc := &Document{path: path, root: root}
	doc.indexInventory()
	return doc, nil
}

// Path returns the file the document was loaded from.
func (d *Document) Path() string {
	return d.path
}

// Root returns the underlying document tree.
func (d *Document) Root() *Value {
	return d.root
}

// indexInventory scans root.properties for inventory-bearing properties and
// concatenates their Map entries, preserving relative order across
// properties then within each property.
func (d *Document) indexInventory() {
	d.index = nil
	d.inventories = nil

	properties := d.root.Get("root").Get("properties")
	for _, m := range properties.Members() {
		if !isInventoryProperty(m.Key, m.Value) {
			continue
		}
		d.inventories = append(d.inventories, m.Value)
		d.index = append(d.index, m.Value.Get("Map").Elems()...)
	}
}

func entryName(entry *Value) (string, bool) {
	return entry.Get("key").Get("Name").String()
}

// Get returns the integer value of the first entry whose key name matches.
// The second return distinguishes absence from zero.
func (d *Document) Get(key string) (int64, bool) {
	for _, entry := range d.index {
		if name, ok := entryName(entry); ok && name == key {
			return entry.Get("value").Get("Int").Int64()
		}
	}
	return 0, false
}

// Set updates the first matching entry's integer value in place, or appends
// a new entry at the end of the index when none matches.
func (d *Document) Set(key string, value int64) {
	for _, entry := range d.index {
		if name, ok := entryName(entry); ok && name == key {
			intValue := entry.Get("value").Get("Int")
			if intValue != nil {
				intValue.SetInt64(value)
				return
			}
			entry.Get("value").Set("Int", NewInt(value))
			return
		}
	}
	d.index = append(d.index, newEntry(key, value))
}

func newEntry(name string, value int64) *Value {
	keyObj := NewObject()
	keyObj.Set("Name", NewString(name))
	valueObj := NewObject()
	valueObj.Set("Int", NewInt(value))
	entry := NewObject()
	entry.Set("key", keyObj)
	entry.Set("value", valueObj)
	return entry
}

// Keys returns every distinct entry name, first occurrence order.
func (d *Document) Keys() []string {
	seen := make(map[string]struct{}, len(d.index))
	keys := make([]string, 0, len(d.index))
	for _, entry := range d.index {
		name, ok := entryName(entry)
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		keys = append(keys, name)
	}
	return keys
}

// EntryCount returns the size of the aggregated index, duplicates included.
func (d *Document) EntryCount() int {
	return len(d.index)
}

// Flush writes the aggregated index back into every property that
// originally contributed entries. The full updated list is assigned to each
// matching property, which duplicates entries across properties; property
// identity is significant to the container format, so this broadcast is
// deliberate.
func (d *Document) Flush() {
	for _, inventory := range d.inventories {
		inventory.Get("Map").SetElems(d.index)
	}
}

// Serialize returns the canonical text form of the whole document.
func (d *Document) Serialize() []byte {
	return d.root.Serialize()
}
