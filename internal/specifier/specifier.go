// Package specifier canonicalizes module specifiers (URIs) exchanged with
// the analyzer, and reverses that canonicalization for specifiers the
// analyzer echoes back.
package specifier

import (
	"net/url"
	"strings"
	"sync"
)

const doubleDts = ".d.ts.d.ts"

// Normalizer tracks, per bridge instance, the mapping from a normalized
// specifier back to whatever oddly-spelled form the analyzer originally
// used for it (spec.md I5). It is safe for concurrent use: the op surface
// normalizes on the host thread while denormalize is called from the same
// thread when building the next request, but tests and the facade may read
// it concurrently with fresh normalize calls.
type Normalizer struct {
	mu       sync.RWMutex
	original map[string]string // normalized -> original
}

// New returns an empty Normalizer.
func New() *Normalizer {
	return &Normalizer{original: make(map[string]string)}
}

// Normalize parses s as an absolute URI after collapsing a doubled
// ".d.ts.d.ts" suffix into ".d.ts" (the quirk the analyzer is observed to
// produce, per spec.md §9). When the collapse changes the string, the
// mapping from the normalized form back to the original spelling is
// recorded so Denormalize can restore it later.
func (n *Normalizer) Normalize(s string) (string, error) {
	collapsed := strings.ReplaceAll(s, doubleDts, ".d.ts")
	if _, err := url.Parse(collapsed); err != nil {
		return "", err
	}
	if collapsed != s {
		n.mu.Lock()
		n.original[collapsed] = s
		n.mu.Unlock()
	}
	return collapsed, nil
}

// Denormalize reverses a prior Normalize call: if normalized was recorded as
// the collapsed form of some original spelling, that original spelling is
// returned; otherwise normalized is returned unchanged (spec.md §4.2).
func (n *Normalizer) Denormalize(normalized string) string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if orig, ok := n.original[normalized]; ok {
		return orig
	}
	return normalized
}
