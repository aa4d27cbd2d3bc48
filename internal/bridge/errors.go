// Package bridge is the Cancellation & Dispatch Facade (spec.md §4.9):
// the public async API the rest of the language server calls. It owns
// cancel-token wiring, reply-slot plumbing, and surfacing the error
// taxonomy from spec.md §7.
package bridge

import "fmt"

// Kind is the closed error taxonomy from spec.md §7.
type Kind int

const (
	// CancelDelivered: the request completed but the token was already
	// tripped; the facade may discard the result.
	CancelDelivered Kind = iota
	// TransportClosed: the host thread is gone (bridge shutting down).
	// Fatal to the caller, not to the process.
	TransportClosed
	// AnalyzerScriptError: an uncaught error inside the analyzer runtime.
	AnalyzerScriptError
	// NoResponse: the analyzer returned without invoking respond.
	NoResponse
	// DecodeError: the JSON the analyzer returned does not fit the
	// expected response type.
	DecodeError
	// InvariantViolation: e.g. a semantic-token span crossing lines.
	InvariantViolation
	// MissingAsset: recoverable; an asset:/// specifier is unknown.
	MissingAsset
	// UnknownSpecifier: recoverable; a non-asset specifier is unknown.
	UnknownSpecifier
)

func (k Kind) String() string {
	switch k {
	case CancelDelivered:
		return "CancelDelivered"
	case TransportClosed:
		return "TransportClosed"
	case AnalyzerScriptError:
		return "AnalyzerScriptError"
	case NoResponse:
		return "NoResponse"
	case DecodeError:
		return "DecodeError"
	case InvariantViolation:
		return "InvariantViolation"
	case MissingAsset:
		return "MissingAsset"
	case UnknownSpecifier:
		return "UnknownSpecifier"
	default:
		return "Unknown"
	}
}

// Error is the taxonomized error type every facade call can return.
type Error struct {
	Kind    Kind
	Message string
	// Specifier is set for MissingAsset/UnknownSpecifier errors.
	Specifier string
}

func (e *Error) Error() string {
	if e.Specifier != "" {
		return fmt.Sprintf("bridge: %s: %s (%s)", e.Kind, e.Message, e.Specifier)
	}
	return fmt.Sprintf("bridge: %s: %s", e.Kind, e.Message)
}

// Recoverable reports whether the error is one the propagation policy
// (spec.md §7) treats as "map to null/empty in the translators" rather
// than surfacing as an internal error.
func (e *Error) Recoverable() bool {
	return e.Kind == MissingAsset || e.Kind == UnknownSpecifier || e.Kind == CancelDelivered
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
