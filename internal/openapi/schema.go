// Package openapi defines the schema fragments produced by derivation and the
// document container they are serialized into. Fragments follow the OpenAPI 3
// Schema Object family: type/format, items, properties/required,
// additionalProperties, enum, oneOf, allOf, description, and $ref.
package openapi

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// RefPrefix is the location of named schemas inside a document. Every $ref
// produced by derivation has the literal form RefPrefix + name.
const RefPrefix = "#/components/schemas/"

// Schema is one fragment of the output schema tree. The populated fields
// determine the variant; everything else stays zero and is omitted from JSON.
type Schema struct {
	Type                 string     `json:"type,omitzero"`
	Format               string     `json:"format,omitzero"`
	Enum                 []string   `json:"enum,omitzero"`
	Items                *Schema    `json:"items,omitzero"`
	Properties           Properties `json:"properties,omitzero"`
	Required             []string   `json:"required,omitzero"`
	AdditionalProperties *Schema    `json:"additionalProperties,omitzero"`
	OneOf                []*Schema  `json:"oneOf,omitzero"`
	AllOf                []*Schema  `json:"allOf,omitzero"`
	Ref                  string     `json:"$ref,omitzero"`
	Description          string     `json:"description,omitzero"`
}

// RefTo builds a reference fragment pointing at a named schema.
func RefTo(name string) *Schema {
	return &Schema{Ref: RefPrefix + name}
}

// Property is one named entry of an object fragment.
type Property struct {
	Name   string
	Schema *Schema
}

// Properties is an insertion-ordered name→schema map. Plain Go maps would
// marshal in random key order; property order must match declaration order.
type Properties []Property

// Get returns the schema for name, or nil if absent.
func (p Properties) Get(name string) *Schema {
	for _, e := range p {
		if e.Name == name {
			return e.Schema
		}
	}
	return nil
}

// MarshalJSONV2 encodes the properties as a JSON object in insertion order.
func (p Properties) MarshalJSONV2(enc *jsontext.Encoder, opts json.Options) error {
	if err := enc.WriteToken(jsontext.ObjectStart); err != nil {
		return err
	}
	for _, e := range p {
		if err := enc.WriteToken(jsontext.String(e.Name)); err != nil {
			return err
		}
		if err := json.MarshalEncode(enc, e.Schema); err != nil {
			return err
		}
	}
	return enc.WriteToken(jsontext.ObjectEnd)
}

// UnmarshalJSONV2 decodes a JSON object preserving member order.
func (p *Properties) UnmarshalJSONV2(dec *jsontext.Decoder, opts json.Options) error {
	tok, err := dec.ReadToken()
	if err != nil {
		return err
	}
	if tok.Kind() != '{' {
		return fmt.Errorf("properties: expected object, got %v", tok.Kind())
	}
	*p = (*p)[:0]
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
		*p = append(*p, Property{Name: nameStr, Schema: &s})
	}
	_, err = dec.ReadToken()
	return err
}
