package openapi

import (
	"strings"
	"testing"

	"github.com/go-json-experiment/json"
)

func TestProperties_MarshalPreservesOrder(t *testing.T) {
	s := &Schema{
		Type: "object",
		Properties: Properties{
			{Name: "zeta", Schema: &Schema{Type: "string"}},
			{Name: "alpha", Schema: &Schema{Type: "number"}},
			{Name: "mid", Schema: RefTo("Mid")},
		},
		Required: []string{"zeta"},
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)

	zeta := strings.Index(out, `"zeta"`)
	alpha := strings.Index(out, `"alpha"`)
	mid := strings.Index(out, `"mid"`)
	if zeta == -1 || alpha == -1 || mid == -1 {
		t.Fatalf("missing property names in %s", out)
	}
	if !(zeta < alpha && alpha < mid) {
		t.Errorf("expected declaration order zeta<alpha<mid in %s", out)
	}
	if !strings.Contains(out, `"$ref":"#/components/schemas/Mid"`) {
		t.Errorf("expected $ref literal, got %s", out)
	}
}

func TestProperties_RoundTrip(t *testing.T) {
	orig := Properties{
		{Name: "b", Schema: &Schema{Type: "string"}},
		{Name: "a", Schema: &Schema{Type: "number"}},
	}
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Properties
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back) != 2 || back[0].Name != "b" || back[1].Name != "a" {
		t.Errorf("expected order [b a], got %+v", back)
	}
	if back[0].Schema.Type != "string" {
		t.Errorf("expected b type='string', got %q", back[0].Schema.Type)
	}
}

func TestSchema_ZeroMarshalsEmpty(t *testing.T) {
	data, err := json.Marshal(&Schema{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("expected {}, got %s", data)
	}
}

func TestRefTo(t *testing.T) {
	s := RefTo("User")
	if s.Ref != "#/components/schemas/User" {
		t.Errorf("unexpected ref %q", s.Ref)
	}
}
