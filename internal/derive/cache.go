package derive

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/go-json-experiment/json"
	"github.com/typederive/typederive/internal/openapi"
	"github.com/typederive/typederive/internal/typedesc"
)

// cacheEntry tracks one nominal type through a traversal.
//
// Entries move through three states: provisional (inserted before expansion,
// hash empty), finalized (hash stored, fragment registered), or superseded
// (removed after deduplication rebound its references to an earlier entry).
type cacheEntry struct {
	typeID       typedesc.ID
	declaredName string // original declared name, pre-sanitization
	assignedName string // unique within the registry
	hash         string // structural hash; set once expansion completes
}

// refCache maps type identity to its cache entry and remembers traversal
// order so deduplication can look backward.
type refCache struct {
	byID    map[typedesc.ID]*cacheEntry
	entries []*cacheEntry
}

func newRefCache() *refCache {
	return &refCache{byID: make(map[typedesc.ID]*cacheEntry)}
}

func (c *refCache) lookup(id typedesc.ID) *cacheEntry {
	return c.byID[id]
}

func (c *refCache) insert(e *cacheEntry) {
	c.byID[e.typeID] = e
	c.entries = append(c.entries, e)
}

// remove retracts a superseded entry.
func (c *refCache) remove(e *cacheEntry) {
	delete(c.byID, e.typeID)
	for i, other := range c.entries {
		if other == e {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			break
		}
	}
}

// findDuplicate returns the first finalized entry registered before self that
// shares self's declared name and structural hash, or nil. Detection only
// ever looks backward in traversal order, so coalescing is order-dependent.
func (c *refCache) findDuplicate(self *cacheEntry, hash string) *cacheEntry {
	for _, e := range c.entries {
		if e == self {
			return nil
		}
		if e.hash != "" && e.hash == hash && e.declaredName == self.declaredName {
			return e
		}
	}
	return nil
}

// resolveNamedType returns a reference fragment for a nominal type, creating
// and finalizing its registry entry on first encounter.
//
// The cache entry (and a registry placeholder under the allocated name) is
// inserted before member expansion. Any reference back to this type during
// expansion then resolves through the cache instead of re-entering it, which
// is the sole mechanism bounding recursion over cyclic type graphs.
func (w *Walker) resolveNamedType(ctx *Context, desc *typedesc.Descriptor) *openapi.Schema {
	if e := ctx.cache.lookup(desc.ID); e != nil {
		return openapi.RefTo(e.assignedName)
	}

	name := allocateName(desc.Name, ctx.Registry)
	entry := &cacheEntry{
		typeID:       desc.ID,
		declaredName: desc.Name,
		assignedName: name,
	}
	ctx.cache.insert(entry)
	ctx.Registry.Register(name, &openapi.Schema{})

	expanded := w.deriveSchema(ctx, desc.ID, modeInline)

	// An earlier entry with the same declared name and identical expansion
	// supersedes this one: retract it and rebind to the earlier name. This
	// catches incidental duplication (identical generic instantiations under
	// different declaration sites) without any global pre-analysis.
	hash := structuralHash(expanded)
	if prior := ctx.cache.findDuplicate(entry, hash); prior != nil {
		ctx.cache.remove(entry)
		ctx.Registry.Remove(name)
		return openapi.RefTo(prior.assignedName)
	}

	entry.hash = hash
	ctx.Registry.Register(name, expanded)
	return openapi.RefTo(name)
}

// structuralHash computes a content hash over the fully expanded fragment.
// Marshaling is deterministic (ordered properties, declared-order slices), so
// equal hashes mean structurally identical schemas.
func structuralHash(s *openapi.Schema) string {
	data, err := json.Marshal(s, json.Deterministic(true))
	if err != nil {
		// Fragments are plain data; marshaling cannot fail in practice. An
		// empty hash keeps the entry provisional and exempt from dedup.
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
