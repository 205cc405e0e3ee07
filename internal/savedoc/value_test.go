package savedoc

import (
	"strings"
	"testing"
)

func TestParsePreservesMemberOrder(t *testing.T) {
	input := `{"zeta": 1, "alpha": {"b": true, "a": null}, "mid": [1, "two"]}`
	value, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	members := value.Members()
	if len(members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(members))
	}
	wantOrder := []string{"zeta", "alpha", "mid"}
	for i, m := range members {
		if m.Key != wantOrder[i] {
			t.Fatalf("member %d: got %q, want %q", i, m.Key, wantOrder[i])
		}
	}

	nested := value.Get("alpha").Members()
	if nested[0].Key != "b" || nested[1].Key != "a" {
		t.Fatalf("nested order lost: %v", nested)
	}
}

func TestParseRejectsTrailingContent(t *testing.T) {
	if _, err := Parse(strings.NewReader(`{"a": 1} {"b": 2}`)); err == nil {
		t.Fatal("expected error for trailing content")
	}
}

func TestSerializeRoundTripKeepsOrder(t *testing.T) {
	input := `{
  "zeta": 1,
  "alpha": {
    "b": true,
    "a": null
  },
  "empty": {},
  "list": [
    1,
    "two"
  ]
}
`
	value, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if got := string(value.Serialize()); got != input {
		t.Fatalf("round trip changed document:\n got %q\nwant %q", got, input)
	}
}

func TestSerializeDoesNotEscapeHTML(t *testing.T) {
	value, err := Parse(strings.NewReader(`{"name": "Sword <Fire & Ice>"}`))
	if err != nil {
		t.Fatal(err)
	}
	out := string(value.Serialize())
	if !strings.Contains(out, "Sword <Fire & Ice>") {
		t.Fatalf("expected raw characters in output, got %q", out)
	}
}

func TestSerializePreservesNumberFormatting(t *testing.T) {
	input := `{
  "big": 9007199254740993,
  "float": 0.5
}
`
	value, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if got := string(value.Serialize()); got != input {
		t.Fatalf("number formatting changed:\n got %q\nwant %q", got, input)
	}
}

func TestValueSetUpdatesInPlace(t *testing.T) {
	obj := NewObject()
	obj.Set("a", NewInt(1))
	obj.Set("b", NewInt(2))
	obj.Set("a", NewInt(3))

	members := obj.Members()
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	if members[0].Key != "a" {
		t.Fatalf("update must not reorder members, first is %q", members[0].Key)
	}
	if n, _ := obj.Get("a").Int64(); n != 3 {
		t.Fatalf("expected updated value 3, got %d", n)
	}
}
