// Package snapshot implements the State Snapshot value type (spec.md
// §4.4): an immutable bundle of handles — document store, asset registry,
// cache metadata, and optional resolvers — that every request carries
// through the facade into the host thread. Cloning a snapshot is O(1)
// because every field is a shared handle (pointer or interface), never a
// deep copy.
package snapshot

import (
	"tsbridge/internal/assets"
	"tsbridge/internal/document"
	"tsbridge/internal/httpcache"
	"tsbridge/internal/resolver"
)

// Snapshot is shared-read by many concurrent facade callers and by the op
// surface inside the host thread for the duration of one call. It is never
// mutated in place; the document store publishes a new Snapshot per
// change (see Store.Publish below).
type Snapshot struct {
	Documents *document.Store
	Assets    *assets.Registry
	Cache     httpcache.Cache

	// ImportMap is the optional import map published with the snapshot
	// (spec.md §4.4 "optional import map"). Nothing in this module reads it
	// during resolution; the resolve op consults only Resolver.
	ImportMap map[string]string

	// Resolver is an optional external collaborator for bare-specifier and
	// node_modules resolution (spec.md §6.7 / SPEC_FULL §6.7). It may be
	// nil, in which case the resolve op returns an empty entry for every
	// specifier, relative and asset:/// ones included.
	Resolver resolver.Resolver
}

// Store publishes immutable Snapshots built from a fixed document store and
// asset registry plus snapshot-varying fields (cache, import map,
// resolver). It exists so the rest of the bridge can ask for "the current
// snapshot" without needing to know when the underlying document store
// last changed — every Open/Update/Close on the document store is followed
// by a Publish call from the server layer.
type Store struct {
	documents *document.Store
	assets    *assets.Registry

	current *Snapshot
}

// NewStore wires together the two long-lived handles a Store publishes
// snapshots around.
func NewStore(documents *document.Store, assetRegistry *assets.Registry) *Store {
	s := &Store{documents: documents, assets: assetRegistry}
	s.current = &Snapshot{Documents: documents, Assets: assetRegistry}
	return s
}

// Publish builds and records a new Snapshot reusing the Store's fixed
// Documents/Assets handles plus the given cache/import-map/resolver. It
// returns the new Snapshot, which is also what Current will return until
// the next Publish.
func (s *Store) Publish(cache httpcache.Cache, importMap map[string]string, res resolver.Resolver) *Snapshot {
	snap := &Snapshot{
		Documents: s.documents,
		Assets:    s.assets,
		Cache:     cache,
		ImportMap: importMap,
		Resolver:  res,
	}
	s.current = snap
	return snap
}

// Current returns the most recently published Snapshot. Cloning it further
// (e.g. passing it by value) is always safe and O(1): every field is a
// handle, and Snapshot itself is never mutated after Publish returns it.
func (s *Store) Current() *Snapshot {
	return s.current
}
