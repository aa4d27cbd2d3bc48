package translate

import (
	"strings"
	"testing"

	"tsbridge/internal/tsctypes"
)

func displayParts(texts ...string) []tsctypes.SymbolDisplayPart {
	parts := make([]tsctypes.SymbolDisplayPart, 0, len(texts))
	for _, t := range texts {
		parts = append(parts, tsctypes.SymbolDisplayPart{Text: t, Kind: "text"})
	}
	return parts
}

func TestDisplayPartsToString_PlainText(t *testing.T) {
	got := DisplayPartsToString(displayParts("const ", "x", ": number"))
	if got != "const x: number" {
		t.Errorf("got %q", got)
	}
}

func TestDisplayPartsToString_BareLinkWithoutTarget(t *testing.T) {
	parts := []tsctypes.SymbolDisplayPart{
		{Kind: "link", Text: "{@link "},
		{Kind: "linkName", Text: "Foo"},
		{Kind: "link", Text: "}"},
	}
	got := DisplayPartsToString(parts)
	if got != "Foo" {
		t.Errorf("got %q, want bare name %q", got, "Foo")
	}
}

func TestDisplayPartsToString_HttpLinkWithText(t *testing.T) {
	parts := []tsctypes.SymbolDisplayPart{
		{Kind: "link", Text: "{@link "},
		{Kind: "linkName", Text: "https://example.com see here"},
		{Kind: "link", Text: "}"},
	}
	got := DisplayPartsToString(parts)
	want := "[see here](https://example.com)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestGetTagDocumentation_ParamSplitsNameAndDescription(t *testing.T) {
	tag := tsctypes.JSDocTagInfo{Name: "param", Text: displayParts("x - the input value")}
	got := GetTagDocumentation(tag)
	if !strings.Contains(got, "*@param*") || !strings.Contains(got, "`x`") || !strings.Contains(got, "the input value") {
		t.Errorf("got %q, missing expected parts", got)
	}
}

func TestGetTagDocumentation_GenericTagLabel(t *testing.T) {
	tag := tsctypes.JSDocTagInfo{Name: "deprecated", Text: displayParts("use Bar instead")}
	got := GetTagDocumentation(tag)
	want := "*@deprecated* - use Bar instead"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestGetTagDocumentation_NoTextJustLabel(t *testing.T) {
	tag := tsctypes.JSDocTagInfo{Name: "internal"}
	got := GetTagDocumentation(tag)
	if got != "*@internal*" {
		t.Errorf("got %q, want %q", got, "*@internal*")
	}
}

func TestBuildHover_AssemblesCodeBlockDocumentationAndTags(t *testing.T) {
	info := tsctypes.QuickInfo{
		DisplayParts:  displayParts("const x: number"),
		Documentation: displayParts("the answer"),
		Tags:          []tsctypes.JSDocTagInfo{{Name: "deprecated", Text: displayParts("use y")}},
	}
	parts := BuildHover(info)
	if len(parts) != 3 {
		t.Fatalf("got %d parts, want 3", len(parts))
	}
	if parts[0].Language != "typescript" || parts[0].Value != "const x: number" {
		t.Errorf("got code part %+v", parts[0])
	}
	if parts[1].Value != "the answer" {
		t.Errorf("got documentation part %+v", parts[1])
	}
	if !strings.Contains(parts[2].Value, "*@deprecated*") {
		t.Errorf("got tags part %+v", parts[2])
	}
}

func TestBuildHover_EmptyQuickInfoProducesNoParts(t *testing.T) {
	parts := BuildHover(tsctypes.QuickInfo{})
	if len(parts) != 0 {
		t.Errorf("got %d parts, want 0", len(parts))
	}
}
