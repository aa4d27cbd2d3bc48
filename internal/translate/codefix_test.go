package translate

import (
	"testing"

	"tsbridge/internal/lineindex"
	"tsbridge/internal/tsctypes"
)

func indexOfFixture(files map[string]string) LineIndexLookup {
	indexes := make(map[string]*lineindex.Index, len(files))
	for specifier, text := range files {
		indexes[specifier] = lineindex.New(text)
	}
	return func(specifier string) *lineindex.Index { return indexes[specifier] }
}

func TestBuildCodeFix_TranslatesEditsPerFile(t *testing.T) {
	indexOf := indexOfFixture(map[string]string{"file:///a.ts": "let x;\n"})
	action := tsctypes.CodeFixAction{
		CodeAction: tsctypes.CodeAction{
			Description: "Add missing semicolon",
			Changes: []tsctypes.FileTextChange{{
				FileName: "file:///a.ts",
				TextChanges: []tsctypes.TextChange{
					{Span: tsctypes.TextSpan{Start: 5, Length: 0}, NewText: ";"},
				},
			}},
		},
		FixName: "addMissingSemicolon",
	}
	got := BuildCodeFix(action, indexOf)
	if got.Title != "Add missing semicolon" || got.FixName != "addMissingSemicolon" {
		t.Errorf("got %+v", got)
	}
	if len(got.Edits) != 1 || got.Edits[0].Specifier != "file:///a.ts" || len(got.Edits[0].Edits) != 1 {
		t.Fatalf("got %+v", got.Edits)
	}
	if got.Edits[0].Edits[0].NewText != ";" {
		t.Errorf("got new text %q, want %q", got.Edits[0].Edits[0].NewText, ";")
	}
}

func TestBuildCodeFixes_Multiple(t *testing.T) {
	indexOf := indexOfFixture(map[string]string{"file:///a.ts": "x\n"})
	actions := []tsctypes.CodeFixAction{
		{CodeAction: tsctypes.CodeAction{Description: "fix 1"}},
		{CodeAction: tsctypes.CodeAction{Description: "fix 2"}},
	}
	got := BuildCodeFixes(actions, indexOf)
	if len(got) != 2 || got[0].Title != "fix 1" || got[1].Title != "fix 2" {
		t.Errorf("got %+v", got)
	}
}

func TestBuildCombinedCodeFix_GroupsByFile(t *testing.T) {
	indexOf := indexOfFixture(map[string]string{
		"file:///a.ts": "let x;\nlet y;\n",
		"file:///b.ts": "let z;\n",
	})
	combined := tsctypes.CombinedCodeActions{
		Changes: []tsctypes.FileTextChange{
			{FileName: "file:///a.ts", TextChanges: []tsctypes.TextChange{
				{Span: tsctypes.TextSpan{Start: 5, Length: 0}, NewText: ";"},
				{Span: tsctypes.TextSpan{Start: 12, Length: 0}, NewText: ";"},
			}},
			{FileName: "file:///b.ts", TextChanges: []tsctypes.TextChange{
				{Span: tsctypes.TextSpan{Start: 5, Length: 0}, NewText: ";"},
			}},
		},
	}
	got := BuildCombinedCodeFix(combined, indexOf)
	if len(got) != 2 {
		t.Fatalf("got %d file groups, want 2", len(got))
	}
	if got[0].Specifier != "file:///a.ts" || len(got[0].Edits) != 2 {
		t.Errorf("got %+v", got[0])
	}
	if got[1].Specifier != "file:///b.ts" || len(got[1].Edits) != 1 {
		t.Errorf("got %+v", got[1])
	}
}
