package host

import (
	"testing"
	"time"

	"tsbridge/internal/assets"
	"tsbridge/internal/document"
	"tsbridge/internal/request"
	"tsbridge/internal/snapshot"
	"tsbridge/internal/specifier"
)

func testSnapshot() *snapshot.Snapshot {
	docs := document.New()
	ar := assets.New(nil)
	return snapshot.NewStore(docs, ar).Current()
}

func TestHost_HappyPath(t *testing.T) {
	stub := NewStubAnalyzer()
	stub.Handlers["getQuickInfo"] = func(ops *Ops, fields map[string]interface{}) (interface{}, error) {
		return map[string]interface{}{"kind": "var"}, nil
	}

	h := New(func() (Analyzer, error) { return stub, nil }, specifier.New(), nil, false)
	defer h.Shutdown()

	req := &request.Request{
		Kind:     "getQuickInfo",
		Snapshot: testSnapshot(),
		Args:     map[string]interface{}{"specifier": "file:///a.ts", "position": 0},
		Reply:    make(chan request.Result, 1),
		Token:    request.NewCancelToken(),
	}
	h.Enqueue(req)

	select {
	case res := <-req.Reply:
		if res.Err != nil {
			t.Fatalf("unexpected error: %v", res.Err)
		}
		obj, ok := res.Data.(map[string]interface{})
		if !ok || obj["kind"] != "var" {
			t.Errorf("got %#v", res.Data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reply")
	}
	if stub.InitCalls != 1 {
		t.Errorf("expected exactly one Init call, got %d", stub.InitCalls)
	}
}

func TestHost_NoResponse(t *testing.T) {
	stub := NewStubAnalyzer()
	stub.NoRespond = map[string]bool{"getQuickInfo": true}

	h := New(func() (Analyzer, error) { return stub, nil }, specifier.New(), nil, false)
	defer h.Shutdown()

	req := &request.Request{
		Kind:     "getQuickInfo",
		Snapshot: testSnapshot(),
		Reply:    make(chan request.Result, 1),
		Token:    request.NewCancelToken(),
	}
	h.Enqueue(req)

	res := <-req.Reply
	if res.Err == nil {
		t.Fatal("expected NoResponse error")
	}
}

func TestHost_AnalyzerScriptError(t *testing.T) {
	stub := NewStubAnalyzer()
	stub.ThrowsOn = map[string]string{"getQuickInfo": "boom"}

	h := New(func() (Analyzer, error) { return stub, nil }, specifier.New(), nil, false)
	defer h.Shutdown()

	req := &request.Request{
		Kind:     "getQuickInfo",
		Snapshot: testSnapshot(),
		Reply:    make(chan request.Result, 1),
		Token:    request.NewCancelToken(),
	}
	h.Enqueue(req)

	res := <-req.Reply
	if res.Err == nil {
		t.Fatal("expected AnalyzerScriptError")
	}
}

func TestHost_StrictFIFOOrdering(t *testing.T) {
	// P3: replies for requests enqueued in order A,B arrive in that order.
	stub := NewStubAnalyzer()
	var order []string
	stub.Handlers["getQuickInfo"] = func(ops *Ops, fields map[string]interface{}) (interface{}, error) {
		order = append(order, fields["tag"].(string))
		return map[string]interface{}{}, nil
	}

	h := New(func() (Analyzer, error) { return stub, nil }, specifier.New(), nil, false)
	defer h.Shutdown()

	var replies []chan request.Result
	for _, tag := range []string{"A", "B", "C"} {
		reply := make(chan request.Result, 1)
		replies = append(replies, reply)
		h.Enqueue(&request.Request{
			Kind:     "getQuickInfo",
			Snapshot: testSnapshot(),
			Args:     map[string]interface{}{"tag": tag},
			Reply:    reply,
			Token:    request.NewCancelToken(),
		})
	}
	for _, reply := range replies {
		<-reply
	}
	if len(order) != 3 || order[0] != "A" || order[1] != "B" || order[2] != "C" {
		t.Errorf("got order %v, want [A B C]", order)
	}
}

func TestHost_Restart(t *testing.T) {
	stub := NewStubAnalyzer()
	h := New(func() (Analyzer, error) { return stub, nil }, specifier.New(), nil, false)
	defer h.Shutdown()

	// Trigger a first init.
	req := &request.Request{
		Kind:     "getQuickInfo",
		Snapshot: testSnapshot(),
		Reply:    make(chan request.Result, 1),
		Token:    request.NewCancelToken(),
	}
	h.Enqueue(req)
	<-req.Reply

	restartReq := &request.Request{
		Kind:     "restart",
		Snapshot: testSnapshot(),
		Reply:    make(chan request.Result, 1),
		Token:    request.NewCancelToken(),
	}
	h.Enqueue(restartReq)
	<-restartReq.Reply

	if stub.CloseCalls != 1 {
		t.Errorf("expected analyzer to be closed on restart, got %d closes", stub.CloseCalls)
	}

	// A subsequent request should re-init.
	req2 := &request.Request{
		Kind:     "getQuickInfo",
		Snapshot: testSnapshot(),
		Reply:    make(chan request.Result, 1),
		Token:    request.NewCancelToken(),
	}
	h.Enqueue(req2)
	<-req2.Reply
	if stub.InitCalls != 2 {
		t.Errorf("expected a second Init call after restart, got %d", stub.InitCalls)
	}
}
