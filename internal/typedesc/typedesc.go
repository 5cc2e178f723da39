// Package typedesc defines the type-descriptor model consumed by the
// derivation engine. A descriptor is a normalized, provider-neutral view of
// one node in a host type graph: its kind, its members, and the identities of
// the types it points at. Descriptors reference each other by ID rather than
// by pointer so that graphs can be serialized, diffed, and rebuilt without
// the host type checker.
package typedesc

// ID is a stable, opaque identity token for a type node. Two descriptors
// describe the same type iff their IDs are equal; structural equality is
// deliberately not part of the contract.
type ID string

// Kind is the primary classification of a type.
type Kind string

const (
	KindPrimitive    Kind = "primitive"    // string, number, null, ...
	KindArray        Kind = "array"        // T[]
	KindBoolean      Kind = "boolean"      // boolean, including two-literal encodings
	KindUnion        Kind = "union"        // A | B
	KindIntersection Kind = "intersection" // A & B
	KindEnumLiteral  Kind = "enumLiteral"  // a single literal member of an enum-like union
	KindNominal      Kind = "nominal"      // class or interface with a declared name
	KindAnonymous    Kind = "anonymous"    // structural type with no declared identity
	KindLazy         Kind = "lazy"         // single-argument deferred value wrapper
	KindOther        Kind = "other"        // anything the provider cannot classify
)

// Accessibility is the declared visibility of an object member.
// The zero value is public.
type Accessibility string

const (
	Public    Accessibility = ""
	Protected Accessibility = "protected"
	Private   Accessibility = "private"
)

// Descriptor describes one type node. Only the fields relevant to the
// descriptor's Kind are populated; everything else stays zero.
type Descriptor struct {
	// ID is the node's identity token. DecodeGraph fills it from the map key
	// when the serialized form omits it.
	ID ID `json:"id,omitzero"`

	// Kind classifies the node.
	Kind Kind `json:"kind"`

	// Name is the declared name. Nominal types only.
	Name string `json:"name,omitzero"`

	// Primitive is the primitive type name (e.g. "string"). KindPrimitive only.
	Primitive string `json:"primitive,omitzero"`

	// Format is an optional format qualifier for primitives (e.g. "date").
	Format string `json:"format,omitzero"`

	// Value is the literal value. KindEnumLiteral only.
	Value string `json:"value,omitzero"`

	// Elem is the element type for arrays, or the single generic argument for
	// lazy wrappers.
	Elem ID `json:"elem,omitzero"`

	// Members are the ordered member types of a union or intersection.
	Members []ID `json:"members,omitzero"`

	// Properties are the ordered own members of a nominal or anonymous type.
	Properties []Property `json:"properties,omitzero"`

	// Index is the value type of a string- or number-keyed index signature,
	// when the type declares one.
	Index ID `json:"index,omitzero"`

	// Callable marks function-shaped types (call or construct signatures).
	// Members whose value type is callable are dropped during expansion.
	Callable bool `json:"callable,omitzero"`

	// Doc is the documentation comment attached to the type declaration.
	Doc string `json:"doc,omitzero"`
}

// Property is one own member of a nominal or anonymous type.
type Property struct {
	// Name is the declared member name.
	Name string `json:"name"`

	// Type is the identity of the member's declared value type. Empty when
	// the provider could not resolve a type for the member.
	Type ID `json:"type,omitzero"`

	// Optional is true when the member carries an optionality marker.
	Optional bool `json:"optional,omitzero"`

	// Accessibility is the member's declared visibility.
	Accessibility Accessibility `json:"accessibility,omitzero"`

	// Callable is true for method-shaped members.
	Callable bool `json:"callable,omitzero"`

	// Doc is the documentation comment attached to the member declaration.
	Doc string `json:"doc,omitzero"`
}

// Provider is the contract the derivation engine requires from a host
// type-information system. All lookups are total: an unknown ID yields a nil
// descriptor or an empty string, never an error.
type Provider interface {
	// Resolve returns the descriptor for id, or nil if the provider has none.
	Resolve(id ID) *Descriptor

	// Doc returns the documentation comment for the type identified by id,
	// or "" when there is none.
	Doc(id ID) string

	// Render returns a best-effort textual rendering of the type identified
	// by id, used when no structured derivation applies.
	Render(id ID) string
}
