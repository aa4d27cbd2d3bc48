// Package request defines the closed set of analyzer request kinds, their
// argument shapes, and how each kind marshals onto the wire the analyzer
// speaks (spec.md §6.3).
package request

import (
	"tsbridge/internal/snapshot"
)

// Kind is the closed variant set of requests the host thread can issue to
// the analyzer (spec.md §6.2/§6.3). It is a string because the wire format
// uses the method name directly.
type Kind string

const (
	Configure                          Kind = "configure"
	FindRenameLocations                Kind = "findRenameLocations"
	GetAssets                          Kind = "getAssets"
	GetApplicableRefactors             Kind = "getApplicableRefactors"
	GetEditsForRefactor                Kind = "getEditsForRefactor"
	GetCodeFixes                       Kind = "getCodeFixes"
	GetCombinedCodeFix                 Kind = "getCombinedCodeFix"
	GetCompletionDetails               Kind = "getCompletionDetails"
	GetCompletions                     Kind = "getCompletions"
	GetDefinition                      Kind = "getDefinition"
	GetDiagnostics                     Kind = "getDiagnostics"
	GetDocumentHighlights              Kind = "getDocumentHighlights"
	GetEncodedSemanticClassifications  Kind = "getEncodedSemanticClassifications"
	GetImplementation                  Kind = "getImplementation"
	GetNavigateToItems                 Kind = "getNavigateToItems"
	GetNavigationTree                  Kind = "getNavigationTree"
	GetOutliningSpans                  Kind = "getOutliningSpans"
	GetQuickInfo                       Kind = "getQuickInfo"
	FindReferences                     Kind = "findReferences"
	GetSignatureHelpItems              Kind = "getSignatureHelpItems"
	GetSmartSelectionRange             Kind = "getSmartSelectionRange"
	GetSupportedCodeFixes              Kind = "getSupportedCodeFixes"
	GetTypeDefinition                  Kind = "getTypeDefinition"
	PrepareCallHierarchy               Kind = "prepareCallHierarchy"
	ProvideCallHierarchyIncomingCalls  Kind = "provideCallHierarchyIncomingCalls"
	ProvideCallHierarchyOutgoingCalls  Kind = "provideCallHierarchyOutgoingCalls"
	ProvideInlayHints                  Kind = "provideInlayHints"
	Restart                            Kind = "restart"
)

// Range is the analyzer's {pos, end} shape, derived from a TextSpan's
// {start, length} pair (spec.md §3 "Ranges are {pos, end} derived from
// {start, length}").
type Range struct {
	Pos int `json:"pos"`
	End int `json:"end"`
}

// RangeFromSpan derives a Range from a {start, length} text span.
func RangeFromSpan(start, length int) Range {
	return Range{Pos: start, End: start + length}
}

// Envelope is the JSON object the host thread sends into the analyzer for
// any request: {id, method, ...fields}. Fields is already specifier-
// denormalized and ready to marshal.
type Envelope struct {
	ID     uint64                 `json:"id"`
	Method string                 `json:"method"`
	Fields map[string]interface{} `json:"-"`
}

// Request is what the facade enqueues onto the host thread: a kind, the
// snapshot active for this call, a reply slot, and a cancellation token
// (spec.md §3 "Request: tuple (kind, snapshot, reply-slot, cancel-token)").
type Request struct {
	Kind     Kind
	Snapshot *snapshot.Snapshot
	Args     map[string]interface{}
	Reply    chan Result
	Token    *CancelToken
}

// Result is what comes back down a Request's Reply channel: either raw
// JSON-decoded data or an error. Exactly one Result is ever sent per
// accepted Request (spec.md P5).
type Result struct {
	Data interface{}
	Err  error
}

// CancelToken is a cooperative cancellation flag threaded through a
// Request. The analyzer polls IsCancelled via the op surface; cancelling a
// token never interrupts an in-flight call from outside (spec.md §4.6).
type CancelToken struct {
	cancelled chan struct{}
}

// NewCancelToken returns a token in the not-cancelled state.
func NewCancelToken() *CancelToken {
	return &CancelToken{cancelled: make(chan struct{})}
}

// Cancel trips the token. Safe to call more than once.
func (t *CancelToken) Cancel() {
	select {
	case <-t.cancelled:
	default:
		close(t.cancelled)
	}
}

// IsCancelled reports whether Cancel has been called.
func (t *CancelToken) IsCancelled() bool {
	select {
	case <-t.cancelled:
		return true
	default:
		return false
	}
}
