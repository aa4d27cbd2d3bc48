// Package resolver defines the external-collaborator interfaces a
// Snapshot may carry for bare-specifier and node_modules-style resolution
// (SPEC_FULL §6.7). The bridge core never implements module resolution
// itself; it only calls through this interface when a Snapshot provides
// one.
package resolver

import "context"

// Resolver resolves a possibly-bare specifier relative to a referrer into
// an absolute specifier the document store or asset registry can serve.
type Resolver interface {
	Resolve(ctx context.Context, specifier, referrer string) (string, error)
}

// NodeResolver extends Resolver with the npm/node_modules-specific lookup
// the analyzer needs when it asks "does this path exist as a node file"
// (spec.md §4.7 op surface "check node-file").
type NodeResolver interface {
	Resolver
	// IsNodeFile reports whether path exists as a file the node_modules
	// resolution algorithm would serve, without resolving it to content.
	IsNodeFile(ctx context.Context, path string) (bool, error)
}

// Static is the simplest Resolver: a fixed map from specifier to resolved
// target, useful for tests and for import-map-only workspaces that carry
// no live resolver.
type Static map[string]string

// Resolve looks specifier up in the map, ignoring referrer.
func (s Static) Resolve(_ context.Context, specifier, _ string) (string, error) {
	if target, ok := s[specifier]; ok {
		return target, nil
	}
	return "", &NotFoundError{Specifier: specifier}
}

// NotFoundError is returned by Resolver implementations (including Static)
// when a specifier has no known resolution.
type NotFoundError struct {
	Specifier string
}

func (e *NotFoundError) Error() string {
	return "resolver: cannot resolve " + e.Specifier
}
