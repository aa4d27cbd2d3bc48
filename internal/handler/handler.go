package handler

import (
	"tsbridge/internal/assets"
	"tsbridge/internal/bridge"
	"tsbridge/internal/document"
	"tsbridge/internal/host"
	"tsbridge/internal/httpcache"
	"tsbridge/internal/lineindex"
	"tsbridge/internal/resolver"
	"tsbridge/internal/snapshot"
	"tsbridge/internal/specifier"
)

const version = "0.1.0"

// Handler holds every piece of shared server state the LSP callbacks need:
// the document store and asset registry a Snapshot is built from, the
// Snapshot publisher itself, the specifier normalizer, and the Bridge the
// handler calls into for every request that needs the analyzer (spec.md
// §4.9). It is the language-server-facing counterpart of bridge_test.go's
// newTestBridge helper, wired for a real WebAssembly analyzer rather than a
// stub.
type Handler struct {
	store      *document.Store
	assetsReg  *assets.Registry
	snapshots  *snapshot.Store
	bridge     *bridge.Bridge
	host       *host.Host
	specifiers *specifier.Normalizer
	cache      httpcache.Cache
	resolver   resolver.Resolver
	importMap  map[string]string
}

// New assembles a Handler around an Analyzer factory (spec.md §6.1: the
// server owns constructing the Host with its Analyzer factory; the Bridge
// itself is built one layer down in the bridge package). builtinAssets
// seeds the asset registry with lib.d.ts and friends (spec.md §4.5); res
// is the optional external resolver for bare-specifier/node_modules
// resolution and may be nil.
func New(factory host.Factory, recorder *host.Recorder, debug bool, builtinAssets map[string]string, res resolver.Resolver) *Handler {
	specifiers := specifier.New()
	h := host.New(factory, specifiers, recorder, debug)

	store := document.New()
	assetRegistry := assets.New(builtinAssets)
	snapshots := snapshot.NewStore(store, assetRegistry)
	cache := httpcache.NewMemoryCache()
	snapshots.Publish(cache, nil, res)

	return &Handler{
		store:      store,
		assetsReg:  assetRegistry,
		snapshots:  snapshots,
		bridge:     bridge.New(h, specifiers),
		host:       h,
		specifiers: specifiers,
		cache:      cache,
		resolver:   res,
	}
}

// Close stops the handler's Host thread. Called once, from the server's
// LSP Shutdown callback.
func (h *Handler) Close() {
	h.host.Shutdown()
}

// publish republishes a Snapshot reusing the handler's fixed store/assets
// handles and current cache/import-map/resolver (spec.md §4.4: every
// document mutation is followed by a fresh Publish).
func (h *Handler) publish() *snapshot.Snapshot {
	return h.snapshots.Publish(h.cache, h.importMap, h.resolver)
}

// normalize maps an editor URI onto the specifier space the bridge
// understands, falling back to the raw URI if the normalizer rejects it
// outright (malformed URIs are surfaced downstream by the analyzer itself,
// not swallowed here).
func (h *Handler) normalize(uri string) string {
	n, err := h.specifiers.Normalize(uri)
	if err != nil {
		return uri
	}
	return n
}

// indexOf builds a lineindex.Index for specifier's current content in the
// document store, or nil if the document is unknown. Used to satisfy the
// translate package's LineIndexLookup/RelatedIndexLookup callbacks.
func (h *Handler) indexOf(specifier string) *lineindex.Index {
	text, ok := h.store.Get(specifier)
	if !ok {
		return nil
	}
	return lineindex.New(text)
}

// scriptVersionOf satisfies translate.ScriptVersionLookup.
func (h *Handler) scriptVersionOf(specifier string) string {
	v, _ := h.store.ScriptVersion(specifier)
	return v
}
