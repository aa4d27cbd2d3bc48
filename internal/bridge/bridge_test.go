package bridge

import (
	"context"
	"testing"
	"time"

	"tsbridge/internal/assets"
	"tsbridge/internal/document"
	"tsbridge/internal/host"
	"tsbridge/internal/request"
	"tsbridge/internal/snapshot"
	"tsbridge/internal/specifier"
)

func newTestBridge(t *testing.T, stub *host.StubAnalyzer) (*Bridge, *snapshot.Snapshot) {
	t.Helper()
	specs := specifier.New()
	h := host.New(func() (host.Analyzer, error) { return stub, nil }, specs, nil, false)
	t.Cleanup(h.Shutdown)
	b := New(h, specs)

	docs := document.New()
	ar := assets.New(nil)
	snap := snapshot.NewStore(docs, ar).Current()
	return b, snap
}

func TestBridge_GetQuickInfo(t *testing.T) {
	stub := host.NewStubAnalyzer()
	stub.Handlers["getQuickInfo"] = func(ops *host.Ops, fields map[string]interface{}) (interface{}, error) {
		return map[string]interface{}{"kind": "var", "textSpan": map[string]interface{}{"start": 0, "length": 1}}, nil
	}
	b, snap := newTestBridge(t, stub)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	info, err := b.GetQuickInfo(ctx, snap, "file:///a.ts", 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info["kind"] != "var" {
		t.Errorf("got %#v", info)
	}
}

func TestBridge_GetCodeFixes_BestEffortOnError(t *testing.T) {
	stub := host.NewStubAnalyzer()
	stub.ThrowsOn = map[string]string{"getCodeFixes": "boom"}
	b, snap := newTestBridge(t, stub)

	ctx := context.Background()
	fixes, err := b.GetCodeFixes(ctx, snap, "file:///a.ts", 0, 5, []int{2584}, nil, nil)
	if err != nil {
		t.Fatalf("expected GetCodeFixes to swallow errors, got %v", err)
	}
	if fixes != nil {
		t.Errorf("expected nil/empty result, got %v", fixes)
	}
}

func TestBridge_GetDiagnostics_SurfacesErrors(t *testing.T) {
	stub := host.NewStubAnalyzer()
	stub.ThrowsOn = map[string]string{"getDiagnostics": "boom"}
	b, snap := newTestBridge(t, stub)

	_, err := b.GetDiagnostics(context.Background(), snap, []string{"file:///a.ts"}, nil)
	if err == nil {
		t.Fatal("expected GetDiagnostics (an authoritative operation) to surface the error")
	}
}

func TestBridge_ContextCancellationCancelsToken(t *testing.T) {
	blocked := make(chan struct{})
	stub := host.NewStubAnalyzer()
	stub.Handlers["getQuickInfo"] = func(ops *host.Ops, fields map[string]interface{}) (interface{}, error) {
		<-blocked
		return map[string]interface{}{}, nil
	}
	b, snap := newTestBridge(t, stub)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := b.GetQuickInfo(ctx, snap, "file:///a.ts", 0, nil)
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected TransportClosed-shaped error on ctx cancellation")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out")
	}
	close(blocked)
}

func TestBridge_Restart(t *testing.T) {
	stub := host.NewStubAnalyzer()
	b, _ := newTestBridge(t, stub)

	if err := b.Restart(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCancelToken_FreshTokenNotCancelled(t *testing.T) {
	// Sanity check that a freshly created CancelToken starts uncancelled.
	tok := request.NewCancelToken()
	if tok.IsCancelled() {
		t.Error("expected fresh token not cancelled")
	}
}
