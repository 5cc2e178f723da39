// Package derive implements recursive schema derivation over a
// type-descriptor graph. A Walker dispatches on descriptor kind and bottoms
// out in openapi fragments; nominal types route through a per-traversal
// reference cache that breaks cycles and deduplicates structurally identical
// schemas.
package derive

import (
	"fmt"

	"github.com/typederive/typederive/internal/diagnostic"
	"github.com/typederive/typederive/internal/openapi"
	"github.com/typederive/typederive/internal/typedesc"
)

// mode selects how nominal types are rendered.
type mode int

const (
	// modeReference returns a $ref for nominal types via the cache.
	modeReference mode = iota
	// modeInline forces full expansion regardless of nominal identity. Used
	// exactly once per cache entry, when finalizing a newly allocated name.
	modeInline
)

// Context carries the mutable state of one traversal: the output namespace of
// finalized named schemas and the identity-keyed reference cache. A Context
// belongs to exactly one root derivation; concurrent derivations must each
// construct their own.
type Context struct {
	// Registry is the output namespace of finalized named schemas.
	Registry *openapi.Registry

	cache *refCache
}

// NewContext creates fresh traversal state.
func NewContext() *Context {
	return &Context{
		Registry: openapi.NewRegistry(),
		cache:    newRefCache(),
	}
}

// Walker derives schema fragments from descriptors supplied by a provider.
// A Walker holds no traversal state and may be reused across contexts.
type Walker struct {
	provider typedesc.Provider
	diags    *diagnostic.Collector
}

// NewWalker creates a walker over the given provider. The collector may be
// nil; diagnostics are then dropped.
func NewWalker(p typedesc.Provider, diags *diagnostic.Collector) *Walker {
	return &Walker{provider: p, diags: diags}
}

// Derive derives a schema fragment for the type identified by id, registering
// named schemas into ctx.Registry as they are encountered. The result is
// either an inline fragment or a reference into the registry.
func (w *Walker) Derive(ctx *Context, id typedesc.ID) *openapi.Schema {
	return w.deriveSchema(ctx, id, modeReference)
}

// deriveSchema resolves id and dispatches on its kind. Every fragment is
// decorated with the type's documentation comment when one exists and the
// fragment has not already picked one up.
func (w *Walker) deriveSchema(ctx *Context, id typedesc.ID, m mode) *openapi.Schema {
	desc := w.provider.Resolve(id)
	if desc == nil {
		return &openapi.Schema{Type: "any"}
	}

	s := w.dispatch(ctx, desc, m)
	if s.Description == "" {
		if doc := w.provider.Doc(id); doc != "" {
			s.Description = doc
		}
	}
	return s
}

// dispatch handles one descriptor by kind, in priority order. Kinds without a
// structured mapping fall through to a primitive carrying the provider's
// textual rendering of the type.
func (w *Walker) dispatch(ctx *Context, desc *typedesc.Descriptor, m mode) *openapi.Schema {
	switch desc.Kind {
	case typedesc.KindLazy:
		// Deferred values resolve synchronously at derivation time; the
		// wrapper never becomes a schema shape of its own.
		return w.deriveSchema(ctx, desc.Elem, m)

	case typedesc.KindArray:
		return &openapi.Schema{
			Type:  "array",
			Items: w.deriveSchema(ctx, desc.Elem, modeReference),
		}

	case typedesc.KindBoolean:
		// Some providers model boolean as the two-literal union true | false.
		// It must always render as the boolean primitive, never as an enum.
		return &openapi.Schema{Type: "boolean"}

	case typedesc.KindUnion:
		return w.deriveUnion(ctx, desc)

	case typedesc.KindIntersection:
		if len(desc.Members) == 0 {
			return &openapi.Schema{}
		}
		members := make([]*openapi.Schema, 0, len(desc.Members))
		for _, member := range desc.Members {
			members = append(members, w.deriveSchema(ctx, member, modeReference))
		}
		return &openapi.Schema{AllOf: members}

	case typedesc.KindNominal:
		// Built-ins first: they never enter the cache or the registry.
		switch desc.Name {
		case "Date":
			return &openapi.Schema{Type: "string", Format: "date"}
		case "Object":
			// The universal top type carries no constraints.
			return &openapi.Schema{Type: "any"}
		}
		if m == modeInline {
			return w.expandObject(ctx, desc)
		}
		return w.resolveNamedType(ctx, desc)

	case typedesc.KindAnonymous:
		// Anonymous structural types have no identity to cache or register;
		// they are always inlined at their use site.
		return w.expandObject(ctx, desc)

	case typedesc.KindPrimitive:
		s := &openapi.Schema{Type: desc.Primitive}
		if s.Type == "" {
			s.Type = w.provider.Render(desc.ID)
		}
		s.Format = desc.Format
		return s

	default:
		rendered := w.provider.Render(desc.ID)
		w.diags.Warn(diagnostic.CategoryTypeUnsupported, string(desc.ID),
			fmt.Sprintf("no schema mapping for %s type %q", desc.Kind, rendered))
		return &openapi.Schema{Type: rendered}
	}
}

// deriveUnion renders a union. A union whose members are all enum literals
// becomes a string enum preserving declared order; anything else becomes a
// oneOf over the member fragments.
func (w *Walker) deriveUnion(ctx *Context, desc *typedesc.Descriptor) *openapi.Schema {
	if len(desc.Members) == 0 {
		return &openapi.Schema{}
	}

	allLiterals := true
	values := make([]string, 0, len(desc.Members))
	for _, member := range desc.Members {
		md := w.provider.Resolve(member)
		if md == nil || md.Kind != typedesc.KindEnumLiteral {
			allLiterals = false
			break
		}
		values = append(values, md.Value)
	}
	if allLiterals {
		return &openapi.Schema{Type: "string", Enum: values}
	}

	members := make([]*openapi.Schema, 0, len(desc.Members))
	for _, member := range desc.Members {
		members = append(members, w.deriveSchema(ctx, member, modeReference))
	}
	return &openapi.Schema{OneOf: members}
}

// expandObject builds the object fragment for a nominal or anonymous type:
// index signature to additionalProperties, then own members in declared
// order. Only publicly observable data members survive — private/protected
// members, method-shaped members, and members whose value type is itself
// function-shaped are dropped.
func (w *Walker) expandObject(ctx *Context, desc *typedesc.Descriptor) *openapi.Schema {
	s := &openapi.Schema{Type: "object"}

	if desc.Index != "" {
		s.AdditionalProperties = w.deriveSchema(ctx, desc.Index, modeReference)
	}

	var props openapi.Properties
	var required []string
	for _, p := range desc.Properties {
		if p.Accessibility == typedesc.Private || p.Accessibility == typedesc.Protected {
			continue
		}
		if p.Callable || w.isFunctionShaped(p.Type) {
			continue
		}

		var ps *openapi.Schema
		if p.Type == "" {
			ps = &openapi.Schema{Type: "any"}
		} else {
			ps = w.deriveSchema(ctx, p.Type, modeReference)
		}
		if p.Doc != "" {
			ps.Description = p.Doc
		}

		props = append(props, openapi.Property{Name: p.Name, Schema: ps})
		if !p.Optional {
			required = append(required, p.Name)
		}
	}

	if len(props) > 0 {
		s.Properties = props
	}
	if len(required) > 0 {
		s.Required = required
	}
	return s
}

// isFunctionShaped reports whether id resolves to a callable type.
func (w *Walker) isFunctionShaped(id typedesc.ID) bool {
	if id == "" {
		return false
	}
	d := w.provider.Resolve(id)
	return d != nil && d.Callable
}
