package translate

import (
	"testing"

	"tsbridge/internal/lineindex"
	"tsbridge/internal/tsctypes"
)

func TestBuildDiagnostic_S1HappyPath(t *testing.T) {
	// S1: `console.log("hello deno");`, diagnostic code 2584 spanning
	// {line 0, 0}..{line 0, 7} (the "console" identifier).
	text := `console.log("hello deno");`
	idx := lineindex.New(text)
	d := tsctypes.Diagnostic{
		File: "file:///a.ts", Start: 0, Length: 7,
		MessageText: "Cannot find name 'console'.", Category: "error", Code: 2584,
	}
	got := BuildDiagnostic(d, idx, nil, "deno-ts")
	if got.Start.Line != 0 || got.Start.Character != 0 || got.End.Line != 0 || got.End.Character != 7 {
		t.Errorf("got range %+v..%+v, want {0,0}..{0,7}", got.Start, got.End)
	}
	if got.Code != 2584 || got.Severity != SeverityError {
		t.Errorf("got code=%d severity=%d, want code=2584 severity=%d", got.Code, got.Severity, SeverityError)
	}
}

func TestBuildDiagnostic_SeverityMapping(t *testing.T) {
	idx := lineindex.New("x")
	cases := []struct {
		category string
		want     Severity
	}{
		{"error", SeverityError},
		{"warning", SeverityWarning},
		{"suggestion", SeverityInformation},
		{"message", SeverityHint},
	}
	for _, c := range cases {
		d := tsctypes.Diagnostic{Category: c.category}
		got := BuildDiagnostic(d, idx, nil, "deno-ts")
		if got.Severity != c.want {
			t.Errorf("category %q: got severity %d, want %d", c.category, got.Severity, c.want)
		}
	}
}

func TestBuildDiagnostic_Tags(t *testing.T) {
	idx := lineindex.New("import { A } from \".\";")
	d := tsctypes.Diagnostic{
		Start: 9, Length: 1, Category: "suggestion", Code: 6133,
		MessageText: "'A' is declared but its value is never read.",
		ReportsUnnecessary: true,
	}
	got := BuildDiagnostic(d, idx, nil, "deno-ts")
	if len(got.Tags) != 1 || got.Tags[0] != TagUnnecessary {
		t.Errorf("got tags %v, want [TagUnnecessary]", got.Tags)
	}
}

func TestBuildDiagnostic_RelatedInformationUsesOtherFileIndex(t *testing.T) {
	idx := lineindex.New("export const x = 1;")
	otherIdx := lineindex.New("import { x } from './a';\nx;")

	d := tsctypes.Diagnostic{
		Start: 0, Length: 1, Category: "error", Code: 1,
		MessageText: "duplicate",
		RelatedInformation: []tsctypes.Diagnostic{
			{File: "file:///b.ts", Start: 26, Length: 1, MessageText: "used here"},
		},
	}
	relatedIndexOf := func(specifier string) *lineindex.Index {
		if specifier == "file:///b.ts" {
			return otherIdx
		}
		return nil
	}
	got := BuildDiagnostic(d, idx, relatedIndexOf, "deno-ts")
	if len(got.Related) != 1 {
		t.Fatalf("got %d related entries, want 1", len(got.Related))
	}
	if got.Related[0].Start.Line != 1 {
		t.Errorf("got related start line %d, want 1 (from the other file's index)", got.Related[0].Start.Line)
	}
}

func TestBuildDiagnostics_Empty(t *testing.T) {
	idx := lineindex.New("")
	got := BuildDiagnostics(nil, idx, nil, "deno-ts")
	if len(got) != 0 {
		t.Errorf("got %d, want 0", len(got))
	}
}
