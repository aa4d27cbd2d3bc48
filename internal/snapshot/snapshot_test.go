package snapshot

import (
	"testing"

	"tsbridge/internal/assets"
	"tsbridge/internal/document"
	"tsbridge/internal/httpcache"
	"tsbridge/internal/resolver"
)

func TestNewStore_CurrentHasFixedHandles(t *testing.T) {
	docs := document.New()
	ar := assets.New(nil)
	s := NewStore(docs, ar)

	snap := s.Current()
	if snap.Documents != docs {
		t.Error("expected Documents handle to match")
	}
	if snap.Assets != ar {
		t.Error("expected Assets handle to match")
	}
}

func TestPublish_ReplacesVaryingFields(t *testing.T) {
	docs := document.New()
	ar := assets.New(nil)
	s := NewStore(docs, ar)

	cache := httpcache.NewMemoryCache()
	res := resolver.Static{"lodash": "file:///node_modules/lodash/index.js"}
	importMap := map[string]string{"x": "y"}

	snap := s.Publish(cache, importMap, res)

	if snap.Cache != cache {
		t.Error("expected Cache to be set")
	}
	if snap.Resolver != res {
		t.Error("expected Resolver to be set")
	}
	if snap.ImportMap["x"] != "y" {
		t.Error("expected ImportMap to be carried through")
	}
	if s.Current() != snap {
		t.Error("expected Current() to return the just-published snapshot")
	}
	// Fixed handles must survive Publish unchanged.
	if snap.Documents != docs || snap.Assets != ar {
		t.Error("expected fixed handles to be unchanged across Publish")
	}
}

func TestPublish_IsCloneFriendly(t *testing.T) {
	// A Snapshot's fields are all handles; copying the struct by value must
	// not duplicate or detach the underlying document store.
	docs := document.New()
	docs.Open("file:///a.ts", "const a = 1", document.LanguageTypeScript)
	ar := assets.New(nil)
	s := NewStore(docs, ar)

	snap := *s.Current()
	docs.Open("file:///b.ts", "const b = 2", document.LanguageTypeScript)

	if !snap.Documents.Exists("file:///b.ts") {
		t.Error("expected the cloned snapshot to see updates through its shared Documents handle")
	}
}
