package translate

import (
	"testing"

	"tsbridge/internal/lineindex"
)

func TestBuildRenameEdits_GroupsBySpecifierInFirstSeenOrder(t *testing.T) {
	idxA := lineindex.New("let foo = 1;\nfoo + 1;")
	idxB := lineindex.New("import { foo } from './a';\nfoo;")

	locations := []RenameLocation{
		{Specifier: "file:///b.ts", Start: 9, Length: 3},
		{Specifier: "file:///a.ts", Start: 4, Length: 3},
		{Specifier: "file:///a.ts", Start: 13, Length: 3},
		{Specifier: "file:///b.ts", Start: 28, Length: 3},
	}

	indexOf := func(specifier string) *lineindex.Index {
		if specifier == "file:///a.ts" {
			return idxA
		}
		return idxB
	}
	versionOf := func(specifier string) string { return "1" }

	got := BuildRenameEdits(locations, "bar", indexOf, versionOf)
	if len(got) != 2 {
		t.Fatalf("got %d file edits, want 2", len(got))
	}
	if got[0].Specifier != "file:///b.ts" || got[1].Specifier != "file:///a.ts" {
		t.Errorf("got order %q, %q; want first-seen order b.ts, a.ts", got[0].Specifier, got[1].Specifier)
	}
	if len(got[0].Edits) != 2 || len(got[1].Edits) != 2 {
		t.Errorf("got edit counts %d, %d; want 2, 2", len(got[0].Edits), len(got[1].Edits))
	}
	for _, fe := range got {
		for _, e := range fe.Edits {
			if e.NewText != "bar" {
				t.Errorf("got new text %q, want %q", e.NewText, "bar")
			}
		}
	}
}

func TestBuildRenameEdits_StampsScriptVersion(t *testing.T) {
	idx := lineindex.New("foo")
	locations := []RenameLocation{{Specifier: "file:///a.ts", Start: 0, Length: 3}}
	got := BuildRenameEdits(locations, "bar",
		func(string) *lineindex.Index { return idx },
		func(string) string { return "42" })
	if got[0].Version != "42" {
		t.Errorf("got version %q, want %q", got[0].Version, "42")
	}
}

func TestBuildRenameEdits_Empty(t *testing.T) {
	got := BuildRenameEdits(nil, "bar", nil, nil)
	if len(got) != 0 {
		t.Errorf("got %d file edits, want 0", len(got))
	}
}
