// Package assets holds the analyzer's built-in library files (lib.*.d.ts
// and a small set of internal sources), keyed by asset:/// URIs. The
// registry is process-wide, immutable after construction except for two
// monotonic additions: merging in whatever the analyzer reports on first
// boot, and attaching a cached navigation tree to an entry at most once.
package assets

import (
	"fmt"

	"github.com/sasha-s/go-deadlock"

	"tsbridge/internal/lineindex"
)

// MissingAssetError is returned when a caller references a specifier the
// registry does not hold.
type MissingAssetError struct {
	Specifier string
}

func (e *MissingAssetError) Error() string {
	return fmt.Sprintf("assets: unknown specifier %q", e.Specifier)
}

// Document is one registered asset: its text, a derived line index, and an
// optional cached navigation tree computed by the analyzer the first time
// it was asked for one.
type Document struct {
	Specifier string
	Text      string
	Lines     *lineindex.Index

	// NavigationTree is opaque to this package; it is whatever the
	// translate package's navigation-tree shape ends up being. Stored as
	// interface{} so assets does not need to import translate.
	NavigationTree interface{}
}

// Registry is the process-wide built-in asset store. Its map is guarded by
// go-deadlock's RWMutex rather than sync.RWMutex: a long-lived,
// single shared-mutable structure touched from both facade callers and the
// host thread is exactly the kind of lock go-deadlock is meant to police
// for accidental lock-ordering cycles introduced as the bridge grows.
type Registry struct {
	mu   deadlock.RWMutex
	docs map[string]*Document
}

// New seeds a Registry from a compiled-in table of (name, text) pairs, as
// spec.md §4.3 requires: "Construction seeds the map from a compiled-in
// table."
func New(builtin map[string]string) *Registry {
	r := &Registry{docs: make(map[string]*Document, len(builtin))}
	for name, text := range builtin {
		spec := "asset:///" + name
		r.docs[spec] = &Document{
			Specifier: spec,
			Text:      text,
			Lines:     lineindex.New(text),
		}
	}
	return r
}

// Get returns the asset document for spec, or nil if unknown.
func (r *Registry) Get(spec string) *Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.docs[spec]
}

// Exists reports whether spec names a known asset.
func (r *Registry) Exists(spec string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.docs[spec]
	return ok
}

// MergeFromAnalyzer merges entries not already present. It is meant to be
// called once per bridge lifetime after a GetAssets request has been
// round-tripped through the host (spec.md §4.3
// "initialize_from_analyzer(snapshot) issues one GetAssets request and
// merges any entries not already present").
func (r *Registry) MergeFromAnalyzer(entries map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for spec, text := range entries {
		if _, ok := r.docs[spec]; ok {
			continue
		}
		r.docs[spec] = &Document{
			Specifier: spec,
			Text:      text,
			Lines:     lineindex.New(text),
		}
	}
}

// AttachNavigationTree writes the navigation-tree slot for spec. It fails
// with MissingAssetError if the specifier is unknown, and is a no-op (not
// an error) if the slot is already populated, matching the "monotonic
// cache" invariant in spec.md's Asset Document data model: the slot "may
// be set at most once per lifetime."
func (r *Registry) AttachNavigationTree(spec string, tree interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[spec]
	if !ok {
		return &MissingAssetError{Specifier: spec}
	}
	if doc.NavigationTree == nil {
		doc.NavigationTree = tree
	}
	return nil
}

// Len returns the number of registered assets, mainly for tests.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}
