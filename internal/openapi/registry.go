package openapi

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Registry is the flat namespace of finalized named schemas. Insertion order
// is preserved so that serialized documents are stable across runs.
//
// Names are unique once a traversal completes. Mid-traversal a name may be
// registered provisionally and removed again when structural deduplication
// supersedes the entry; Remove exists for that case only.
type Registry struct {
	names   []string
	schemas map[string]*Schema
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*Schema)}
}

// Register adds or replaces the schema for name. Replacing an existing name
// keeps its original insertion position; derivation relies on this to swap a
// provisional placeholder for the finalized fragment.
func (r *Registry) Register(name string, s *Schema) {
	if _, ok := r.schemas[name]; !ok {
		r.names = append(r.names, name)
	}
	r.schemas[name] = s
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.schemas[name]
	return ok
}

// Get returns the schema registered under name, or nil.
func (r *Registry) Get(name string) *Schema {
	return r.schemas[name]
}

// Remove deletes name from the registry. Only ever used to retract a
// not-yet-finalized duplicate during deduplication.
func (r *Registry) Remove(name string) {
	if _, ok := r.schemas[name]; !ok {
		return
	}
	delete(r.schemas, name)
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i], r.names[i+1:]...)
			break
		}
	}
}

// Len returns the number of registered schemas.
func (r *Registry) Len() int {
	return len(r.names)
}

// Names returns the registered names in insertion order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// MarshalJSONV2 encodes the registry as a JSON object in insertion order.
func (r *Registry) MarshalJSONV2(enc *jsontext.Encoder, opts json.Options) error {
	if err := enc.WriteToken(jsontext.ObjectStart); err != nil {
		return err
	}
	for _, name := range r.names {
		if err := enc.WriteToken(jsontext.String(name)); err != nil {
			return err
		}
		if err := json.MarshalEncode(enc, r.schemas[name]); err != nil {
			return err
		}
	}
	return enc.WriteToken(jsontext.ObjectEnd)
}

// UnmarshalJSONV2 decodes a JSON object preserving member order.
func (r *Registry) UnmarshalJSONV2(dec *jsontext.Decoder, opts json.Options) error {
	tok, err := dec.ReadToken()
	if err != nil {
		return err
	}
	if tok.Kind() != '{' {
		return fmt.Errorf("registry: expected object, got %v", tok.Kind())
	}
	r.names = nil
	r.schemas = make(map[string]*Schema)
	for dec.PeekKind() != '}' {
		name, err := dec.ReadToken()
		if err != nil {
			return err
		}
		nameStr := name.String()
		var s Schema
		if err := json.UnmarshalDecode(dec, &s); err != nil {
			return err
		}
		r.Register(nameStr, &s)
	}
	_, err = dec.ReadToken()
	return err
}
