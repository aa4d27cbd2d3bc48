package specifier

import "testing"

func TestNormalize_CollapsesDoubleDts(t *testing.T) {
	n := New()
	got, err := n.Normalize("file:///a/foo.d.ts.d.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "file:///a/foo.d.ts" {
		t.Errorf("got %q, want file:///a/foo.d.ts", got)
	}
}

func TestNormalize_LeavesOrdinarySpecifiersAlone(t *testing.T) {
	n := New()
	got, err := n.Normalize("file:///a/foo.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "file:///a/foo.ts" {
		t.Errorf("got %q, want unchanged", got)
	}
}

func TestDenormalize_ReversibleForEverythingNormalized(t *testing.T) {
	n := New()
	original := "file:///a/foo.d.ts.d.ts"
	normalized, err := n.Normalize(original)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := n.Denormalize(normalized); got != original {
		t.Errorf("got %q, want original %q", got, original)
	}
}

func TestDenormalize_UnknownSpecifierPassesThrough(t *testing.T) {
	n := New()
	if got := n.Denormalize("file:///never/seen.ts"); got != "file:///never/seen.ts" {
		t.Errorf("got %q, want unchanged", got)
	}
}
