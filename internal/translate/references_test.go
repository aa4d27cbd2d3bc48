package translate

import (
	"testing"

	"tsbridge/internal/tsctypes"
)

func TestBuildLocation_ConvertsSpan(t *testing.T) {
	idx := indexOfFixture(map[string]string{"file:///a.ts": "foo();\n"})("file:///a.ts")
	span := tsctypes.DocumentSpan{FileName: "file:///a.ts", TextSpan: tsctypes.TextSpan{Start: 0, Length: 3}}
	got := BuildLocation(span, idx)
	if got.Specifier != "file:///a.ts" || got.Start.Character != 0 || got.End.Character != 3 {
		t.Errorf("got %+v", got)
	}
}

func TestBuildLocations_ResolvesPerFileIndex(t *testing.T) {
	indexOf := indexOfFixture(map[string]string{
		"file:///a.ts": "foo();\n",
		"file:///b.ts": "import { foo } from './a';\n",
	})
	spans := []tsctypes.DocumentSpan{
		{FileName: "file:///a.ts", TextSpan: tsctypes.TextSpan{Start: 0, Length: 3}},
		{FileName: "file:///b.ts", TextSpan: tsctypes.TextSpan{Start: 9, Length: 3}},
	}
	got := BuildLocations(spans, indexOf)
	if len(got) != 2 {
		t.Fatalf("got %d locations, want 2", len(got))
	}
	if got[0].Specifier != "file:///a.ts" || got[1].Specifier != "file:///b.ts" {
		t.Errorf("got %+v", got)
	}
}

func TestRenameLocationsToLocations(t *testing.T) {
	indexOf := indexOfFixture(map[string]string{"file:///a.ts": "let foo = 1;\n"})
	locations := []tsctypes.RenameLocation{
		{DocumentSpan: tsctypes.DocumentSpan{FileName: "file:///a.ts", TextSpan: tsctypes.TextSpan{Start: 4, Length: 3}}},
	}
	got := RenameLocationsToLocations(locations, indexOf)
	if len(got) != 1 || got[0].Specifier != "file:///a.ts" {
		t.Errorf("got %+v", got)
	}
}
