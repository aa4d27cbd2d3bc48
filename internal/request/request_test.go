package request

import "testing"

func TestRangeFromSpan(t *testing.T) {
	r := RangeFromSpan(10, 5)
	if r.Pos != 10 || r.End != 15 {
		t.Errorf("got %+v, want {Pos:10 End:15}", r)
	}
}

func TestCancelToken_InitiallyNotCancelled(t *testing.T) {
	tok := NewCancelToken()
	if tok.IsCancelled() {
		t.Error("expected fresh token to be not-cancelled")
	}
}

func TestCancelToken_CancelTripsFlag(t *testing.T) {
	tok := NewCancelToken()
	tok.Cancel()
	if !tok.IsCancelled() {
		t.Error("expected token to report cancelled after Cancel")
	}
}

func TestCancelToken_CancelIsIdempotent(t *testing.T) {
	tok := NewCancelToken()
	tok.Cancel()
	tok.Cancel() // must not panic (closing a closed channel would)
	if !tok.IsCancelled() {
		t.Error("expected token to remain cancelled")
	}
}
