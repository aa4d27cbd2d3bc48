package translate

import (
	"testing"

	"tsbridge/internal/lineindex"
	"tsbridge/internal/tsctypes"
)

func TestBuildFoldingRange_LineFoldingOnlyOmitsCharacters(t *testing.T) {
	text := "function f() {\n  return 1;\n}"
	idx := lineindex.New(text)
	span := tsctypes.OutliningSpan{TextSpan: tsctypes.TextSpan{Start: 13, Length: len(text) - 13}, Kind: "code"}

	fr := BuildFoldingRange(span, idx, []byte(text), true)
	if fr.StartCharacter != nil || fr.EndCharacter != nil {
		t.Errorf("line-folding-only should omit characters, got %+v", fr)
	}
}

func TestBuildFoldingRange_CharactersIncludedWhenNotLineFoldingOnly(t *testing.T) {
	text := "function f() {\n  return 1;\n}"
	idx := lineindex.New(text)
	span := tsctypes.OutliningSpan{TextSpan: tsctypes.TextSpan{Start: 13, Length: len(text) - 13}, Kind: "code"}

	fr := BuildFoldingRange(span, idx, []byte(text), false)
	if fr.StartCharacter == nil || fr.EndCharacter == nil {
		t.Fatalf("expected characters to be set, got %+v", fr)
	}
}

func TestBuildFoldingRange_PullsEndLineBackForPairCharacter(t *testing.T) {
	// Span ends exactly on the closing "}" at the start of line 2 (0-indexed).
	text := "function f() {\n  return 1;\n}"
	idx := lineindex.New(text)
	span := tsctypes.OutliningSpan{TextSpan: tsctypes.TextSpan{Start: 13, Length: len(text) - 13}, Kind: "code"}

	fr := BuildFoldingRange(span, idx, []byte(text), true)
	if fr.EndLine != 1 {
		t.Errorf("got end line %d, want 1 (pulled back from the closing brace's line)", fr.EndLine)
	}
}

func TestBuildFoldingRange_DoesNotPullBackWithoutLineFoldingOnly(t *testing.T) {
	text := "function f() {\n  return 1;\n}"
	idx := lineindex.New(text)
	span := tsctypes.OutliningSpan{TextSpan: tsctypes.TextSpan{Start: 13, Length: len(text) - 13}, Kind: "code"}

	fr := BuildFoldingRange(span, idx, []byte(text), false)
	if fr.EndLine != 2 {
		t.Errorf("got end line %d, want 2 (unpulled, character-precise mode)", fr.EndLine)
	}
}

func TestBuildFoldingRange_KindMapping(t *testing.T) {
	text := "// a comment\nx"
	idx := lineindex.New(text)

	cases := []struct {
		kind string
		want string
	}{
		{"comment", "comment"},
		{"region", "region"},
		{"imports", "imports"},
		{"code", ""},
	}
	for _, c := range cases {
		span := tsctypes.OutliningSpan{TextSpan: tsctypes.TextSpan{Start: 0, Length: 12}, Kind: c.kind}
		fr := BuildFoldingRange(span, idx, []byte(text), false)
		if fr.Kind != c.want {
			t.Errorf("kind %q: got %q, want %q", c.kind, fr.Kind, c.want)
		}
	}
}
