package resolver

import (
	"context"
	"testing"
)

func TestStatic_Resolve(t *testing.T) {
	s := Static{"lodash": "file:///node_modules/lodash/index.js"}
	got, err := s.Resolve(context.Background(), "lodash", "file:///a.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "file:///node_modules/lodash/index.js" {
		t.Errorf("got %q", got)
	}
}

func TestStatic_ResolveNotFound(t *testing.T) {
	s := Static{}
	_, err := s.Resolve(context.Background(), "missing", "file:///a.ts")
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := err.(*NotFoundError); !ok {
		t.Errorf("got error type %T, want *NotFoundError", err)
	}
}
