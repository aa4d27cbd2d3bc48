package host

import "encoding/json"

// StubAnalyzer is an in-process Analyzer test double: instead of running
// a real WASM guest, it dispatches each serverRequest payload's "method"
// field to a caller-registered handler and calls ops.Respond with
// whatever that handler returns. It exists so the host, bridge, and
// translate packages are testable without a real analyzer binary —
// exactly the role spec.md's S1/S2/S6 scenarios need a concrete
// implementation for.
type StubAnalyzer struct {
	Handlers map[string]func(ops *Ops, fields map[string]interface{}) (interface{}, error)

	InitCalls  int
	CloseCalls int
	LastDebug  bool

	// NoRespond, when set for a method name, simulates an analyzer that
	// returns from serverRequest without ever invoking respond (exercises
	// the NoResponse error kind).
	NoRespond map[string]bool
	// ThrowsOn, when set for a method name, simulates the analyzer
	// throwing out of serverRequest (exercises AnalyzerScriptError).
	ThrowsOn map[string]string
}

// NewStubAnalyzer returns a StubAnalyzer with no handlers registered.
func NewStubAnalyzer() *StubAnalyzer {
	return &StubAnalyzer{Handlers: make(map[string]func(*Ops, map[string]interface{}) (interface{}, error))}
}

// Init records the bootstrap call.
func (s *StubAnalyzer) Init(debug bool) error {
	s.InitCalls++
	s.LastDebug = debug
	return nil
}

// Close records that the runtime was torn down.
func (s *StubAnalyzer) Close() error {
	s.CloseCalls++
	return nil
}

type stubEnvelope struct {
	ID     uint64                 `json:"id"`
	Method string                 `json:"method"`
	Fields map[string]interface{} `json:"-"`
}

// ServerRequest decodes payload as the host's flat {id, method, ...args}
// envelope, passes every key other than id and method to the handler for
// method as its fields, and — unless NoRespond/ThrowsOn says otherwise —
// calls ops.Respond with the handler's JSON-marshaled result.
func (s *StubAnalyzer) ServerRequest(ops *Ops, payload []byte) error {
	var env stubEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return err
	}
	if err := json.Unmarshal(payload, &env.Fields); err != nil {
		return err
	}
	delete(env.Fields, "id")
	delete(env.Fields, "method")
	if msg, ok := s.ThrowsOn[env.Method]; ok {
		return &scriptPanic{msg}
	}

	var result interface{}
	var err error
	if handler, ok := s.Handlers[env.Method]; ok {
		result, err = handler(ops, env.Fields)
		if err != nil {
			return err
		}
	}

	if s.NoRespond[env.Method] {
		return nil
	}

	data, marshalErr := json.Marshal(result)
	if marshalErr != nil {
		return marshalErr
	}
	ops.Respond(env.ID, data)
	return nil
}

type scriptPanic struct{ msg string }

func (p *scriptPanic) Error() string { return p.msg }
