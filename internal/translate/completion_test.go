package translate

import (
	"testing"

	"tsbridge/internal/lineindex"
	"tsbridge/internal/tsctypes"
)

func TestFilterText_BracketAccessor(t *testing.T) {
	// S4: a member-variable entry named ['foo'] with insert text ['foo']
	// yields filter text .foo.
	entry := tsctypes.CompletionEntry{Name: "['foo']", InsertText: "['foo']"}
	got, ok := FilterText(entry)
	if !ok {
		t.Fatal("expected a filter text")
	}
	if got != ".foo" {
		t.Errorf("got %q, want %q", got, ".foo")
	}
}

func TestFilterText_PrivateNoInsertText(t *testing.T) {
	// S4: a private entry #abc with no insert text yields filter None.
	entry := tsctypes.CompletionEntry{Name: "#abc"}
	_, ok := FilterText(entry)
	if ok {
		t.Error("expected no filter text")
	}
}

func TestFilterText_PrivateWithThisPrefix(t *testing.T) {
	// S4: an entry #abc with insert this.#abc yields filter abc.
	entry := tsctypes.CompletionEntry{Name: "#abc", InsertText: "this.#abc"}
	got, ok := FilterText(entry)
	if !ok {
		t.Fatal("expected a filter text")
	}
	if got != "abc" {
		t.Errorf("got %q, want %q", got, "abc")
	}
}

func TestFilterText_ThisPrefixedNoFilter(t *testing.T) {
	entry := tsctypes.CompletionEntry{Name: "abc", InsertText: "this.abc"}
	_, ok := FilterText(entry)
	if ok {
		t.Error("expected no filter text for this.-prefixed non-private insert")
	}
}

func TestFilterText_PlainPassesThrough(t *testing.T) {
	entry := tsctypes.CompletionEntry{Name: "foo", InsertText: "foo"}
	got, ok := FilterText(entry)
	if !ok || got != "foo" {
		t.Errorf("got (%q, %v), want (\"foo\", true)", got, ok)
	}
}

func TestSortText_AutoImportSortsAfterLocals(t *testing.T) {
	local := tsctypes.CompletionEntry{SortText: "1"}
	autoImport := tsctypes.CompletionEntry{SortText: "1", Source: "./foo"}

	gotLocal := SortText(local)
	gotImport := SortText(autoImport)
	if gotLocal != "1" {
		t.Errorf("got %q, want \"1\"", gotLocal)
	}
	if gotImport <= gotLocal {
		t.Errorf("expected auto-import sort text %q to sort after local %q", gotImport, gotLocal)
	}
}

func TestCommitCharacters_NewIdentifierLocationSuppresses(t *testing.T) {
	entry := tsctypes.CompletionEntry{Kind: tsctypes.ElementVariable}
	if got := CommitCharacters(entry, true, false); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestCommitCharacters_AccessorCommitsOnDotAndSemicolon(t *testing.T) {
	entry := tsctypes.CompletionEntry{Kind: tsctypes.ElementInterface}
	got := CommitCharacters(entry, false, false)
	want := []string{".", ";"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCommitCharacters_VariableCommitsOnParenUnlessCompleteFunctionCalls(t *testing.T) {
	entry := tsctypes.CompletionEntry{Kind: tsctypes.ElementVariable}
	withParen := CommitCharacters(entry, false, false)
	if withParen[len(withParen)-1] != "(" {
		t.Errorf("got %v, expected trailing (", withParen)
	}
	withoutParen := CommitCharacters(entry, false, true)
	for _, c := range withoutParen {
		if c == "(" {
			t.Errorf("got %v, did not expect ( when completeFunctionCalls is set", withoutParen)
		}
	}
}

func TestBuildCompletionItem_OptionalAppendsQuestionMark(t *testing.T) {
	entry := tsctypes.CompletionEntry{
		Name:          "foo",
		KindModifiers: "optional",
	}
	item := BuildCompletionItem(entry, false, false, nil, nil)
	if item.Label != "foo?" {
		t.Errorf("got label %q, want \"foo?\"", item.Label)
	}
	if !item.HasFilterText || item.FilterText != "foo" {
		t.Errorf("got filter (%q, %v), want (\"foo\", true)", item.FilterText, item.HasFilterText)
	}
}

func TestBuildCompletionItem_DeprecatedTag(t *testing.T) {
	entry := tsctypes.CompletionEntry{Name: "foo", KindModifiers: "deprecated"}
	item := BuildCompletionItem(entry, false, false, nil, nil)
	if !item.Deprecated {
		t.Error("expected Deprecated to be true")
	}
}

func TestBuildCompletionItem_ScriptDetailUsesKindModifierNotNameSuffix(t *testing.T) {
	// The extension is selected from kindModifiers, not from whether the
	// name happens to end with it; a name already carrying the extension
	// is left as-is rather than replaced by the bare extension.
	entry := tsctypes.CompletionEntry{Name: "foo.ts", Kind: tsctypes.ElementScript, KindModifiers: ".ts"}
	item := BuildCompletionItem(entry, false, false, nil, nil)
	if item.Detail != "foo.ts" {
		t.Errorf("got detail %q, want \"foo.ts\"", item.Detail)
	}
}

func TestBuildCompletionItem_ScriptDetailAppendsMissingExtension(t *testing.T) {
	entry := tsctypes.CompletionEntry{Name: "foo", Kind: tsctypes.ElementScript, KindModifiers: ".ts"}
	item := BuildCompletionItem(entry, false, false, nil, nil)
	if item.Detail != "foo.ts" {
		t.Errorf("got detail %q, want \"foo.ts\"", item.Detail)
	}
}

func TestBuildCompletionItem_ReplacementSpanProducesTextEdit(t *testing.T) {
	idx := lineindex.New("ab.foo")
	entry := tsctypes.CompletionEntry{
		Name:            "foobar",
		InsertText:      "foobar",
		ReplacementSpan: &tsctypes.TextSpan{Start: 3, Length: 3},
	}
	item := BuildCompletionItem(entry, false, false, nil, idx)
	if item.TextEdit == nil {
		t.Fatal("expected a TextEdit")
	}
	if item.TextEdit.NewText != "foobar" {
		t.Errorf("got NewText %q, want \"foobar\"", item.TextEdit.NewText)
	}
	if item.TextEdit.Start.Character != 3 || item.TextEdit.End.Character != 6 {
		t.Errorf("got range [%d,%d), want [3,6)", item.TextEdit.Start.Character, item.TextEdit.End.Character)
	}
}
