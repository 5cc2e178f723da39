package typedesc

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-json-experiment/json"
)

// Graph is a self-contained descriptor set: the serialized form of a
// provider's type dump. It implements Provider, which makes it both the CLI's
// input format and a convenient in-memory provider for tests.
type Graph struct {
	Types map[ID]*Descriptor `json:"types"`
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{Types: make(map[ID]*Descriptor)}
}

// Add inserts a descriptor keyed by its ID and returns the graph for chaining.
func (g *Graph) Add(d *Descriptor) *Graph {
	g.Types[d.ID] = d
	return g
}

// DecodeGraph reads a JSON graph dump. Descriptors that omit their own ID
// inherit the map key, so dumps don't have to repeat identities.
func DecodeGraph(r io.Reader) (*Graph, error) {
	var g Graph
	if err := json.UnmarshalRead(r, &g); err != nil {
		return nil, fmt.Errorf("decode type graph: %w", err)
	}
	if g.Types == nil {
		g.Types = make(map[ID]*Descriptor)
	}
	for id, d := range g.Types {
		if d == nil {
			delete(g.Types, id)
			continue
		}
		if d.ID == "" {
			d.ID = id
		}
	}
	return &g, nil
}

// Encode writes the graph as JSON.
func (g *Graph) Encode(w io.Writer) error {
	return json.MarshalWrite(w, g, json.Deterministic(true))
}

// Resolve implements Provider.
func (g *Graph) Resolve(id ID) *Descriptor {
	return g.Types[id]
}

// Doc implements Provider.
func (g *Graph) Doc(id ID) string {
	if d := g.Types[id]; d != nil {
		return d.Doc
	}
	return ""
}

// Render implements Provider. It prefers the declared name, then the
// primitive name, then the kind tag.
func (g *Graph) Render(id ID) string {
	d := g.Types[id]
	if d == nil {
		return "unknown"
	}
	switch {
	case d.Name != "":
		return d.Name
	case d.Primitive != "":
		return d.Primitive
	case d.Kind != "":
		return string(d.Kind)
	default:
		return "unknown"
	}
}

// NominalIDs returns the IDs of every nominal type in the graph, sorted for
// stable iteration. Map order is not meaningful, so callers that derive "all
// named types" need this to be deterministic.
func (g *Graph) NominalIDs() []ID {
	var ids []ID
	for id, d := range g.Types {
		if d.Kind == KindNominal {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
