package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"saveforge/internal/logging"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseMasterList(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "master_list.txt", "5 Health Potion\n12 Iron Sword\n\nPotion\nx Mana Potion\n")

	entries, warnings, err := ParseMasterList(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Quantity != 5 || entries[0].Name != "Health Potion" {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings for malformed lines, got %d: %v", len(warnings), warnings)
	}
}

func TestPatchWithMasterListSetsQuantity(t *testing.T) {
	dir := t.TempDir()
	mapping := writeFile(t, dir, "mapping.yaml", validMapping)
	list := writeFile(t, dir, "master_list.txt", "5 Health Potion\nPotion\n")

	cat, err := Load(mapping)
	if err != nil {
		t.Fatal(err)
	}

	warnings, err := cat.PatchWithMasterList(list, logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning for malformed line, got %v", warnings)
	}

	if cat.Items[0].Quantity == nil || *cat.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5 on Health Potion, got %v", cat.Items[0].Quantity)
	}
	if cat.Items[1].Quantity != nil {
		t.Fatalf("Mana Potion should not be patched, got %v", *cat.Items[1].Quantity)
	}

	// Enrichment is persisted back to the source.
	reloaded, err := Load(mapping)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Items[0].Quantity == nil || *reloaded.Items[0].Quantity != 5 {
		t.Fatalf("expected persisted quantity, got %v", reloaded.Items[0].Quantity)
	}
}

func TestPatchFirstMatchWins(t *testing.T) {
	dir := t.TempDir()
	mapping := writeFile(t, dir, "mapping.yaml", `items:
  - name: Greater Health Potion
    save_key: Potion_GreaterHealth
    category: Consumables.Potions
  - name: Health Potion
    save_key: Potion_Health
    category: Consumables.Potions
`)
	list := writeFile(t, dir, "master_list.txt", "9 Health Potion\n")

	cat, err := Load(mapping)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cat.PatchWithMasterList(list, logging.NewNop()); err != nil {
		t.Fatal(err)
	}

	// "Health Potion" is a substring of both names; the first catalog entry
	// in original order wins and the scan stops there.
	if cat.Items[0].Quantity == nil || *cat.Items[0].Quantity != 9 {
		t.Fatalf("expected first match patched, got %v", cat.Items[0].Quantity)
	}
	if cat.Items[1].Quantity != nil {
		t.Fatal("expected scan to stop after first match")
	}
}

func TestPatchCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	mapping := writeFile(t, dir, "mapping.yaml", validMapping)
	list := writeFile(t, dir, "master_list.txt", "3 health potion\n")

	cat, err := Load(mapping)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cat.PatchWithMasterList(list, logging.NewNop()); err != nil {
		t.Fatal(err)
	}
	if cat.Items[0].Quantity == nil || *cat.Items[0].Quantity != 3 {
		t.Fatalf("expected case-insensitive match, got %v", cat.Items[0].Quantity)
	}
}

func TestPatchMissingListIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	mapping := writeFile(t, dir, "mapping.yaml", validMapping)

	cat, err := Load(mapping)
	if err != nil {
		t.Fatal(err)
	}

	warnings, err := cat.PatchWithMasterList(filepath.Join(dir, "absent.txt"), logging.NewNop())
	if err != nil {
		t.Fatalf("missing master list must not be fatal, got %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected a skip warning, got %v", warnings)
	}
}
