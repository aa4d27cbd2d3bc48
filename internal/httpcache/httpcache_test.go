package httpcache

import "testing"

func TestMemoryCache_PutAndGet(t *testing.T) {
	c := NewMemoryCache()
	c.Put(Entry{Specifier: "https://example.com/a.ts", Text: "export const a = 1;"})

	got, ok := c.Get("https://example.com/a.ts")
	if !ok {
		t.Fatal("expected entry to be present")
	}
	if got.Text != "export const a = 1;" {
		t.Errorf("got %q", got.Text)
	}
}

func TestMemoryCache_GetMissing(t *testing.T) {
	c := NewMemoryCache()
	_, ok := c.Get("https://example.com/missing.ts")
	if ok {
		t.Error("expected ok=false for missing entry")
	}
}

func TestMemoryCache_PutReplaces(t *testing.T) {
	c := NewMemoryCache()
	c.Put(Entry{Specifier: "https://example.com/a.ts", Text: "first"})
	c.Put(Entry{Specifier: "https://example.com/a.ts", Text: "second"})

	got, _ := c.Get("https://example.com/a.ts")
	if got.Text != "second" {
		t.Errorf("got %q, want 'second'", got.Text)
	}
}
