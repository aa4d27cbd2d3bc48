package translate

import (
	"strings"
	"testing"

	"tsbridge/internal/lineindex"
	"tsbridge/internal/tsctypes"
)

func TestBuildResolvedCompletionItem_ExistingDetailWins(t *testing.T) {
	idx := lineindex.New("")
	details := tsctypes.CompletionEntryDetails{DisplayParts: displayParts("const x: number")}
	got := BuildResolvedCompletionItem(details, "already set", "file:///a.ts", idx, nil)
	if got.Detail != "already set" {
		t.Errorf("got %q, want the pre-existing detail to win", got.Detail)
	}
}

func TestBuildResolvedCompletionItem_FallsBackToDisplayParts(t *testing.T) {
	idx := lineindex.New("")
	details := tsctypes.CompletionEntryDetails{DisplayParts: displayParts("const x: number")}
	got := BuildResolvedCompletionItem(details, "", "file:///a.ts", idx, nil)
	if got.Detail != "const x: number" {
		t.Errorf("got %q", got.Detail)
	}
}

func TestBuildResolvedCompletionItem_DocumentationIncludesTags(t *testing.T) {
	idx := lineindex.New("")
	details := tsctypes.CompletionEntryDetails{
		Documentation: displayParts("does a thing"),
		Tags:          []tsctypes.JSDocTagInfo{{Name: "deprecated", Text: displayParts("use y")}},
	}
	got := BuildResolvedCompletionItem(details, "", "file:///a.ts", idx, nil)
	if !strings.Contains(got.Documentation, "does a thing") || !strings.Contains(got.Documentation, "*@deprecated*") {
		t.Errorf("got %q, missing expected parts", got.Documentation)
	}
}

func TestBuildResolvedCompletionItem_SameFileChangesBecomeTextEdits(t *testing.T) {
	idx := lineindex.New("import {} from \"./a\";\n")
	details := tsctypes.CompletionEntryDetails{
		CodeActions: []tsctypes.CodeAction{{
			Changes: []tsctypes.FileTextChange{{
				FileName: "file:///a.ts",
				TextChanges: []tsctypes.TextChange{
					{Span: tsctypes.TextSpan{Start: 9, Length: 4}, NewText: "{ x }"},
				},
			}},
		}},
	}
	got := BuildResolvedCompletionItem(details, "", "file:///a.ts", idx, nil)
	if len(got.AdditionalTextEdits) != 1 || got.AdditionalTextEdits[0].NewText != "{ x }" {
		t.Fatalf("got %+v", got.AdditionalTextEdits)
	}
	if got.HasRemainingChanges {
		t.Error("expected no remaining changes for a single same-file edit")
	}
}

func TestBuildResolvedCompletionItem_OtherFileChangeSetsRemainingFlag(t *testing.T) {
	idx := lineindex.New("")
	details := tsctypes.CompletionEntryDetails{
		CodeActions: []tsctypes.CodeAction{{
			Changes: []tsctypes.FileTextChange{{FileName: "file:///other.ts"}},
		}},
	}
	got := BuildResolvedCompletionItem(details, "", "file:///a.ts", idx, nil)
	if !got.HasRemainingChanges {
		t.Error("expected HasRemainingChanges to be true for an other-file change")
	}
	if len(got.AdditionalTextEdits) != 0 {
		t.Errorf("got %d additional edits, want 0", len(got.AdditionalTextEdits))
	}
}

func TestBuildResolvedCompletionItem_RewriteCallbackApplied(t *testing.T) {
	idx := lineindex.New("import {} from \"./a\";\n")
	details := tsctypes.CompletionEntryDetails{
		CodeActions: []tsctypes.CodeAction{{
			Changes: []tsctypes.FileTextChange{{
				FileName: "file:///a.ts",
				TextChanges: []tsctypes.TextChange{
					{Span: tsctypes.TextSpan{Start: 9, Length: 4}, NewText: "./b"},
				},
			}},
		}},
	}
	rewrite := func(newText string) string { return newText + ".ts" }
	got := BuildResolvedCompletionItem(details, "", "file:///a.ts", idx, rewrite)
	if got.AdditionalTextEdits[0].NewText != "./b.ts" {
		t.Errorf("got %q, want rewritten specifier", got.AdditionalTextEdits[0].NewText)
	}
}
