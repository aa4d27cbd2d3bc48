package host

import (
	"context"
	"encoding/json"
	"sync"

	"tsbridge/internal/document"
	"tsbridge/internal/request"
	"tsbridge/internal/snapshot"
	"tsbridge/internal/specifier"
)

// LoadResult is what the load op returns for a resolvable specifier.
type LoadResult struct {
	Data       string `json:"data"`
	ScriptKind string `json:"scriptKind"`
	Version    string `json:"version"`
}

// ResolvedSpecifier is one element of the resolve op's parallel result
// list: the resolved specifier and its file extension, or both empty if
// resolution failed for that entry.
type ResolvedSpecifier struct {
	Specifier string
	Extension string
}

// Ops is the op surface the analyzer calls back into during one
// serverRequest call (spec.md §4.7). A single Ops is installed into
// host-thread-local state for the duration of exactly one call, then
// discarded; it must never be shared across concurrent calls, which the
// host's one-in-flight-call invariant (I2) guarantees.
type Ops struct {
	mu         sync.Mutex
	snapshot   *snapshot.Snapshot
	token      *request.CancelToken
	specifiers *specifier.Normalizer

	respondID   uint64
	respondData json.RawMessage
	responded   bool
}

// newOps installs a snapshot and token for one call.
func newOps(snap *snapshot.Snapshot, token *request.CancelToken, specs *specifier.Normalizer) *Ops {
	return &Ops{snapshot: snap, token: token, specifiers: specs}
}

// IsCancelled reads the installed token (op surface "is_cancelled").
func (o *Ops) IsCancelled() bool {
	return o.token.IsCancelled()
}

// Load maps asset:/// specifiers to the asset registry and anything else
// to the document store, returning nil if neither holds it (op surface
// "load").
func (o *Ops) Load(spec string) *LoadResult {
	denorm := o.specifiers.Denormalize(spec)
	if asset := o.snapshot.Assets.Get(denorm); asset != nil {
		return &LoadResult{Data: asset.Text, ScriptKind: "d.ts", Version: "1"}
	}
	if doc := o.snapshot.Documents.Document(denorm); doc != nil {
		return &LoadResult{Data: doc.Content, ScriptKind: scriptKindName(doc.Language), Version: doc.ScriptVersion()}
	}
	return nil
}

func scriptKindName(lang document.LanguageKind) string {
	switch lang {
	case document.LanguageJavaScript:
		return "js"
	case document.LanguageJSX:
		return "jsx"
	case document.LanguageTSX:
		return "tsx"
	case document.LanguageJSON:
		return "json"
	default:
		return "ts"
	}
}

// Resolve resolves each specifier in specifiers relative to base via the
// snapshot's Resolver, returning a parallel list of ResolvedSpecifier (op
// surface "resolve"). If base is unknown or no resolver is configured, all
// entries come back empty and a warning is logged — this is non-fatal per
// spec.md §4.7.
func (o *Ops) Resolve(ctx context.Context, base string, specifiers []string) []ResolvedSpecifier {
	out := make([]ResolvedSpecifier, len(specifiers))
	if o.snapshot.Resolver == nil {
		log.Warningf("resolve op called with no resolver configured (base=%s)", base)
		return out
	}
	for i, s := range specifiers {
		resolved, err := o.snapshot.Resolver.Resolve(ctx, s, base)
		if err != nil {
			log.Warningf("resolve(%q relative to %q) failed: %v", s, base, err)
			continue
		}
		out[i] = ResolvedSpecifier{Specifier: resolved, Extension: extensionOf(resolved)}
	}
	return out
}

func extensionOf(spec string) string {
	for i := len(spec) - 1; i >= 0 && i > len(spec)-8; i-- {
		if spec[i] == '.' {
			return spec[i:]
		}
		if spec[i] == '/' {
			break
		}
	}
	return ""
}

// ScriptNames enumerates every specifier the analyzer should consider a
// program root, in the order spec.md §4.7 requires: injected node-types
// first, then module-graph imports, then every diagnosable document and
// its dependencies, deduplicated.
func (o *Ops) ScriptNames() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}

	if o.snapshot.Documents.HasInjectedNodeTypes() {
		add("asset:///lib.deno_node.d.ts")
	}
	for _, s := range o.snapshot.Documents.ModuleGraphImports() {
		add(s)
	}
	for _, doc := range o.snapshot.Documents.AllDiagnosable() {
		add(doc.Specifier)
		for _, dep := range doc.Dependencies {
			add(dep)
		}
	}
	return out
}

// ScriptVersion returns a monotonically-changing tag for spec, or nil if
// unknown. Assets always report "1" since their text never changes
// (spec.md §4.7, P6).
func (o *Ops) ScriptVersion(spec string) *string {
	denorm := o.specifiers.Denormalize(spec)
	if o.snapshot.Assets.Exists(denorm) {
		v := "1"
		return &v
	}
	if v, ok := o.snapshot.Documents.ScriptVersion(denorm); ok {
		return &v
	}
	return nil
}

// nodeFileChecker is implemented by resolver.NodeResolver; declared here
// (rather than importing the resolver package's interface type directly)
// so Ops only depends on the one method it actually calls.
type nodeFileChecker interface {
	IsNodeFile(ctx context.Context, path string) (bool, error)
}

// IsNodeFile reports whether path resolves inside an npm package.
func (o *Ops) IsNodeFile(ctx context.Context, path string) bool {
	nr, ok := o.snapshot.Resolver.(nodeFileChecker)
	if !ok {
		return false
	}
	result, err := nr.IsNodeFile(ctx, path)
	if err != nil {
		return false
	}
	return result
}

// Respond stashes data into host state for the enclosing call to pick up
// (op surface "respond"). Returns true per the analyzer-facing contract.
func (o *Ops) Respond(id uint64, data json.RawMessage) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.respondID = id
	o.respondData = data
	o.responded = true
	return true
}

// take returns whatever Respond stashed, clearing it, and reports whether
// Respond was ever called during this Ops' lifetime.
func (o *Ops) take() (json.RawMessage, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	data, ok := o.respondData, o.responded
	o.respondData, o.responded = nil, false
	return data, ok
}
