package openapi

import (
	"strings"
	"testing"

	"github.com/go-json-experiment/json"
)

func TestRegistry_InsertionOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("Zebra", &Schema{Type: "object"})
	r.Register("Apple", &Schema{Type: "object"})
	r.Register("Mango", &Schema{Type: "object"})

	names := r.Names()
	if len(names) != 3 || names[0] != "Zebra" || names[1] != "Apple" || names[2] != "Mango" {
		t.Errorf("expected insertion order, got %v", names)
	}
}

func TestRegistry_ReplaceKeepsPosition(t *testing.T) {
	r := NewRegistry()
	r.Register("A", &Schema{})
	r.Register("B", &Schema{})
	r.Register("A", &Schema{Type: "object"}) // finalize placeholder

	names := r.Names()
	if names[0] != "A" || names[1] != "B" {
		t.Errorf("replacing must keep position, got %v", names)
	}
	if r.Get("A").Type != "object" {
		t.Errorf("expected replaced schema, got %+v", r.Get("A"))
	}
	if r.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", r.Len())
	}
}

func TestRegistry_Remove(t *testing.T) {
	r := NewRegistry()
	r.Register("A", &Schema{})
	r.Register("B", &Schema{})
	r.Remove("A")

	if r.Has("A") {
		t.Error("A should be gone")
	}
	names := r.Names()
	if len(names) != 1 || names[0] != "B" {
		t.Errorf("expected [B], got %v", names)
	}
	r.Remove("A") // removing twice is a no-op
	if r.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", r.Len())
	}
}

func TestRegistry_MarshalOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("Second", &Schema{Type: "string"})
	r.Register("First", &Schema{Type: "number"})

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)
	if !(strings.Index(out, `"Second"`) < strings.Index(out, `"First"`)) {
		t.Errorf("expected registration order in %s", out)
	}
}

func TestRegistry_RoundTrip(t *testing.T) {
	r := NewRegistry()
	r.Register("B", &Schema{Type: "string"})
	r.Register("A", &Schema{Type: "object", Required: []string{"x"}})

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	back := NewRegistry()
	if err := json.Unmarshal(data, back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	names := back.Names()
	if len(names) != 2 || names[0] != "B" || names[1] != "A" {
		t.Errorf("expected order [B A], got %v", names)
	}
	if got := back.Get("A"); got == nil || len(got.Required) != 1 {
		t.Errorf("expected A with required, got %+v", got)
	}
}
