// Package host implements the Analyzer Host (spec.md §4.6): a dedicated
// OS thread owning the embedded script runtime, draining a strict-FIFO
// request queue one call at a time. It also supplies that runtime's op
// surface (ops.go), a performance recorder (metrics.go), a real
// WebAssembly-backed Analyzer (wasm.go), and an in-process test double
// (stub.go).
package host

import (
	"encoding/json"
	"runtime"
	"time"

	"github.com/tliron/commonlog"

	"tsbridge/internal/request"
	"tsbridge/internal/specifier"
)

var log = commonlog.GetLogger("tsbridge.host")

// Factory builds a fresh Analyzer. The host thread calls it lazily, when
// it processes its first non-restart request, and again on the first such
// request after every Restart request (spec.md §4.6
// "Restart: a special Restart kind discards and recreates the runtime on
// the same thread").
type Factory func() (Analyzer, error)

// Host owns the dedicated thread a bridge instance's analyzer runs on.
// Nothing outside this package's loop goroutine ever touches the
// Analyzer, satisfying spec.md §5's "the analyzer runtime is owned
// exclusively by the host thread" shared-resource policy.
type Host struct {
	newAnalyzer Factory
	specifiers  *specifier.Normalizer
	recorder    *Recorder
	debug       bool

	queue chan *request.Request
	done  chan struct{}

	nextID   uint64
	started  bool
	analyzer Analyzer
}

// New starts the host's dedicated goroutine. The queue is effectively
// unbounded (spec.md §5 backpressure policy: "the request channel is
// unbounded; the facade does not block") — backed by a very large buffer
// rather than a literally unbounded channel, which Go does not offer
// natively.
func New(factory Factory, specifiers *specifier.Normalizer, recorder *Recorder, debug bool) *Host {
	h := &Host{
		newAnalyzer: factory,
		specifiers:  specifiers,
		recorder:    recorder,
		debug:       debug,
		queue:       make(chan *request.Request, 4096),
		done:        make(chan struct{}),
	}
	go h.loop()
	return h
}

// Enqueue submits a request for processing. It never blocks the caller
// beyond the channel send (spec.md §5 "the facade side is parallel ... N
// concurrent callers ... enqueue requests, fully serialized by the
// request channel").
func (h *Host) Enqueue(req *request.Request) {
	h.queue <- req
}

// Shutdown stops the host thread and closes the runtime. In-flight and
// already-queued requests still drain first. A request enqueued after the
// loop has stopped is never processed and gets no reply from the host; a
// caller awaiting it through the bridge facade gets TransportClosed only
// once the caller's context is done.
func (h *Host) Shutdown() {
	close(h.done)
}

// loop is the single-threaded cooperative scheduler (spec.md §4.6). It
// runs pinned to one OS thread for the bridge's whole lifetime: the
// analyzer runtime is explicitly single-threaded and must never observe
// calls from more than one goroutine/thread.
func (h *Host) loop() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for {
		select {
		case <-h.done:
			for drained := false; !drained; {
				select {
				case req := <-h.queue:
					h.process(req)
				default:
					drained = true
				}
			}
			if h.analyzer != nil {
				if err := h.analyzer.Close(); err != nil {
					log.Errorf("error closing analyzer on shutdown: %v", err)
				}
			}
			return
		case req := <-h.queue:
			h.process(req)
		}
	}
}

func (h *Host) process(req *request.Request) {
	if req.Kind == "restart" {
		h.restart(req)
		return
	}

	if err := h.ensureStarted(); err != nil {
		h.reply(req, nil, err)
		return
	}

	id := h.nextID
	h.nextID++

	denormArgs := h.denormalizeSpecifiers(req.Args)
	envelope := map[string]interface{}{"id": id, "method": string(req.Kind)}
	for k, v := range denormArgs {
		envelope[k] = v
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		h.reply(req, nil, &hostError{kind: "DecodeError", msg: err.Error()})
		return
	}

	ops := newOps(req.Snapshot, req.Token, h.specifiers)

	start := time.Now()
	callErr := h.safeServerRequest(ops, payload)
	if h.recorder != nil {
		h.recorder.Measure(string(req.Kind), start, time.Now())
	}
	if callErr != nil {
		h.reply(req, nil, &hostError{kind: "AnalyzerScriptError", msg: callErr.Error()})
		return
	}

	data, responded := ops.take()
	if !responded {
		h.reply(req, nil, &hostError{kind: "NoResponse", msg: "analyzer returned without invoking respond"})
		return
	}

	var decoded interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		h.reply(req, nil, &hostError{kind: "DecodeError", msg: err.Error()})
		return
	}
	h.reply(req, h.renormalizeSpecifiers(decoded), nil)
}

// safeServerRequest ensures no panic escapes the host thread (spec.md §7
// "No panic escapes the host thread — it catches and reports").
func (h *Host) safeServerRequest(ops *Ops, payload []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &hostError{kind: "AnalyzerScriptError", msg: "panic in analyzer call: " + panicString(r)}
		}
	}()
	return h.analyzer.ServerRequest(ops, payload)
}

func panicString(r interface{}) string {
	if e, ok := r.(error); ok {
		return e.Error()
	}
	if s, ok := r.(string); ok {
		return s
	}
	return "unknown panic"
}

func (h *Host) ensureStarted() error {
	if h.started {
		return nil
	}
	analyzer, err := h.newAnalyzer()
	if err != nil {
		return &hostError{kind: "AnalyzerScriptError", msg: "constructing analyzer: " + err.Error()}
	}
	if err := analyzer.Init(h.debug); err != nil {
		return &hostError{kind: "AnalyzerScriptError", msg: "initializing analyzer: " + err.Error()}
	}
	h.analyzer = analyzer
	h.started = true
	if h.recorder != nil {
		h.recorder.Mark("analyzer_init")
	}
	return nil
}

func (h *Host) restart(req *request.Request) {
	if h.analyzer != nil {
		if err := h.analyzer.Close(); err != nil {
			log.Errorf("error closing analyzer on restart: %v", err)
		}
	}
	h.analyzer = nil
	h.started = false
	if h.recorder != nil {
		h.recorder.Mark("restart")
	}
	h.reply(req, nil, nil)
}

// denormalizeSpecifiers walks the request args and denormalizes any
// string value under a key named "specifier" or "specifiers" (spec.md
// §6.3 "All specifier fields are denormalized before send").
func (h *Host) denormalizeSpecifiers(args map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(args))
	for k, v := range args {
		switch {
		case k == "specifier":
			if s, ok := v.(string); ok {
				out[k] = h.specifiers.Denormalize(s)
				continue
			}
		case k == "specifiers":
			if list, ok := v.([]string); ok {
				denormed := make([]string, len(list))
				for i, s := range list {
					denormed[i] = h.specifiers.Denormalize(s)
				}
				out[k] = denormed
				continue
			}
		}
		out[k] = v
	}
	return out
}

// renormalizeSpecifiers re-normalizes the "specifier"/"fileName"/"file"
// string fields at the top level of a decoded response object (spec.md
// §6.3). Nested objects and arrays are not walked, and the translate
// package does no renormalization either, so specifiers nested inside a
// response are passed on as the analyzer wrote them.
func (h *Host) renormalizeSpecifiers(v interface{}) interface{} {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return v
	}
	for _, key := range []string{"specifier", "fileName", "file"} {
		if s, ok := obj[key].(string); ok {
			normalized, err := h.specifiers.Normalize(s)
			if err == nil {
				obj[key] = normalized
			}
		}
	}
	return obj
}

func (h *Host) reply(req *request.Request, data interface{}, err error) {
	// req.Reply is created by the facade with capacity 1, so this send
	// never blocks the host thread. If the facade already gave up on the
	// receiver end (e.g. the caller stopped waiting after a cancellation),
	// the default case logs and moves on rather than panicking — per
	// spec.md §5: "Dropping the reply-slot on the facade side must not
	// panic the host — the host only logs."
	select {
	case req.Reply <- request.Result{Data: data, Err: err}:
	default:
		log.Warningf("reply dropped for request kind %s", req.Kind)
	}
}

// hostError is the host package's own small error type; the bridge
// package wraps these into its public bridge.Error taxonomy at the facade
// boundary so this package does not need to import bridge (which would
// create an import cycle, since bridge depends on host).
type hostError struct {
	kind string
	msg  string
}

func (e *hostError) Error() string { return e.kind + ": " + e.msg }

// Kind exposes the taxonomy kind name so the bridge package can map it
// onto bridge.Kind without host needing to know that type.
func (e *hostError) Kind() string { return e.kind }
