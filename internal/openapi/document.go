package openapi

import (
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Document is a minimal OpenAPI 3.1 container for a derivation result: an
// info block plus the populated components/schemas namespace. Paths and the
// rest of the document surface are a downstream concern.
type Document struct {
	OpenAPI    string     `json:"openapi"`
	Info       Info       `json:"info"`
	Components Components `json:"components"`
}

// Info holds the document metadata block.
type Info struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description,omitzero"`
}

// Components holds the reusable schema namespace.
type Components struct {
	Schemas *Registry `json:"schemas"`
}

// NewDocument wraps a registry in a document shell.
func NewDocument(info Info, schemas *Registry) *Document {
	if info.Title == "" {
		info.Title = "typederive"
	}
	if info.Version == "" {
		info.Version = "0.0.0"
	}
	if schemas == nil {
		schemas = NewRegistry()
	}
	return &Document{
		OpenAPI:    "3.1.0",
		Info:       info,
		Components: Components{Schemas: schemas},
	}
}

// Encode writes the document as indented JSON with a trailing newline.
func (d *Document) Encode(w io.Writer) error {
	if err := json.MarshalWrite(w, d, jsontext.WithIndent("  ")); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// DecodeDocument reads a document previously written by Encode.
func DecodeDocument(r io.Reader) (*Document, error) {
	var d Document
	if err := json.UnmarshalRead(r, &d); err != nil {
		return nil, err
	}
	if d.Components.Schemas == nil {
		d.Components.Schemas = NewRegistry()
	}
	return &d, nil
}
