package host

import "encoding/json"

// Analyzer is the embedded, single-threaded script runtime the host
// thread owns exclusively (spec.md §2 "Analyzer Host", §5 "the analyzer
// runtime is owned exclusively by the host thread"). The bridge treats it
// as opaque: it does not design the analyzer's internal logic, only the
// boundary it crosses through Init/ServerRequest/Close and the Ops
// callbacks the analyzer invokes during ServerRequest.
type Analyzer interface {
	// Init bootstraps the runtime with an inline "serverInit" call,
	// carrying a {debug} payload (spec.md §6.1).
	Init(debug bool) error

	// ServerRequest invokes globalThis.serverRequest(payload) inside the
	// runtime (spec.md §4.6 step 4). During the call the analyzer may call
	// back into ops; ServerRequest itself does not return the response —
	// the analyzer delivers it by calling ops.Respond, which the host
	// reads out of Ops after ServerRequest returns.
	ServerRequest(ops *Ops, payload []byte) error

	// Close tears down the runtime. Called on Restart and on host
	// shutdown.
	Close() error
}

// bootstrapPayload is the JSON shape sent to serverInit.
type bootstrapPayload struct {
	Debug bool `json:"debug"`
}

func marshalBootstrap(debug bool) []byte {
	b, _ := json.Marshal(bootstrapPayload{Debug: debug})
	return b
}
