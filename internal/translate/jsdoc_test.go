package translate

import "testing"

func TestReplaceLinks_PlainLink(t *testing.T) {
	got := ReplaceLinks("test {@link http://x/y a link} test")
	want := "test [a link](http://x/y) test"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReplaceLinks_Linkcode(t *testing.T) {
	got := ReplaceLinks("test {@linkcode http://deno.land/x/mod.ts a link} test")
	want := "test [`a link`](http://deno.land/x/mod.ts) test"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReplaceLinks_NoTextUsesURLTwice(t *testing.T) {
	got := ReplaceLinks("{@link http://x/y}")
	want := "[http://x/y](http://x/y)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReplaceLinks_Idempotent(t *testing.T) {
	// P7: applying the link rewriter twice yields the same string as once.
	once := ReplaceLinks("test {@link http://x/y a link} test")
	twice := ReplaceLinks(once)
	if once != twice {
		t.Errorf("not idempotent: once=%q twice=%q", once, twice)
	}
}

func TestRenderDocLinks_ResolvableSymbol(t *testing.T) {
	resolver := fakeResolver{"Foo": {"file:///a.ts", 3, 5}}
	got := RenderDocLinks("{@link Foo}", resolver)
	want := "[Foo](file:///a.ts#L3,5)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderDocLinks_UnresolvableSymbolVerbatim(t *testing.T) {
	resolver := fakeResolver{}
	got := RenderDocLinks("{@link Bar}", resolver)
	if got != "Bar" {
		t.Errorf("got %q, want %q", got, "Bar")
	}
}

type fakeResolver map[string]struct {
	uri        string
	line, col int
}

func (f fakeResolver) Resolve(symbol string) (string, int, int, bool) {
	loc, ok := f[symbol]
	return loc.uri, loc.line, loc.col, ok
}
