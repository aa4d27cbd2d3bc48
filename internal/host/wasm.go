package host

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wasmerio/wasmer-go/wasmer"
)

// WasmAnalyzer embeds the third-party analyzer as a WebAssembly guest
// module via wasmer-go. The bridge never designs what happens inside the
// guest; it only exchanges JSON payloads with it over linear memory and
// registers the op surface as host-imported functions the guest calls
// back into mid-request.
//
// Memory protocol: the guest exports "alloc"/"dealloc" for the host to
// place request payloads into its linear memory, and "server_init"/
// "server_request" functions that take (ptr, len) and return a packed
// (ptr<<32 | len) result pointing at a JSON response the guest wrote into
// its own memory. This mirrors the alloc/invoke/read-back shape used for
// WASM guest calls generally (see the executor this package is grounded
// on).
type WasmAnalyzer struct {
	engine   *wasmer.Engine
	store    *wasmer.Store
	module   *wasmer.Module
	instance *wasmer.Instance
	memory   *wasmer.Memory

	alloc        func(...interface{}) (interface{}, error)
	dealloc      func(...interface{}) (interface{}, error)
	serverInit   func(...interface{}) (interface{}, error)
	serverReq    func(...interface{}) (interface{}, error)

	ops *Ops // the Ops installed for the in-flight call, used by host import fns
}

// NewWasmAnalyzer compiles wasmBytes and wires the op surface as imports
// under the "host" namespace. The guest is expected to import:
// host.is_cancelled, host.is_node_file, host.load, host.resolve,
// host.script_names, host.script_version, host.respond — each taking and
// returning (ptr, len) pairs into shared linear memory, per the op
// interface in spec.md §6.4.
func NewWasmAnalyzer(wasmBytes []byte) (*WasmAnalyzer, error) {
	engine := wasmer.NewEngine()
	store := wasmer.NewStore(engine)
	module, err := wasmer.NewModule(store, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("host: compiling analyzer module: %w", err)
	}

	a := &WasmAnalyzer{engine: engine, store: store, module: module}

	importObject := wasmer.NewImportObject()
	importObject.Register("host", map[string]wasmer.IntoExtern{
		"is_cancelled":   a.wrapImport(a.hostIsCancelled),
		"is_node_file":   a.wrapImport(a.hostIsNodeFile),
		"load":           a.wrapImport(a.hostLoad),
		"resolve":        a.wrapImport(a.hostResolve),
		"script_names":   a.wrapImport(a.hostScriptNames),
		"script_version": a.wrapImport(a.hostScriptVersion),
		"respond":        a.wrapImport(a.hostRespond),
	})

	instance, err := wasmer.NewInstance(module, importObject)
	if err != nil {
		return nil, fmt.Errorf("host: instantiating analyzer module: %w", err)
	}
	a.instance = instance

	memory, err := instance.Exports.GetMemory("memory")
	if err != nil {
		return nil, fmt.Errorf("host: analyzer module exports no linear memory: %w", err)
	}
	a.memory = memory

	for name, dst := range map[string]*func(...interface{}) (interface{}, error){
		"alloc":          &a.alloc,
		"dealloc":        &a.dealloc,
		"server_init":    &a.serverInit,
		"server_request": &a.serverReq,
	} {
		fn, err := instance.Exports.GetFunction(name)
		if err != nil {
			return nil, fmt.Errorf("host: analyzer module missing export %q: %w", name, err)
		}
		*dst = fn
	}

	return a, nil
}

// wrapImport adapts a Go callback taking/returning raw (ptr,len) wasm
// i32 pairs into a wasmer.IntoExtern host function.
func (a *WasmAnalyzer) wrapImport(fn func(ptr, length int32) (int32, int32)) wasmer.IntoExtern {
	ty := wasmer.NewFunctionType(
		wasmer.NewValueTypes(wasmer.I32, wasmer.I32),
		wasmer.NewValueTypes(wasmer.I64),
	)
	return wasmer.NewFunction(a.store, ty, func(args []wasmer.Value) ([]wasmer.Value, error) {
		ptr := args[0].I32()
		length := args[1].I32()
		outPtr, outLen := fn(ptr, length)
		return []wasmer.Value{wasmer.NewI64(packPtrLen(outPtr, outLen))}, nil
	})
}

func packPtrLen(ptr, length int32) int64 {
	return int64(uint64(uint32(ptr))<<32 | uint64(uint32(length)))
}

func unpackPtrLen(packed int64) (int32, int32) {
	u := uint64(packed)
	return int32(u >> 32), int32(uint32(u))
}

func (a *WasmAnalyzer) readMemory(ptr, length int32) []byte {
	data := a.memory.Data()
	return append([]byte(nil), data[ptr:ptr+length]...)
}

func (a *WasmAnalyzer) writeMemory(b []byte) (int32, int32, error) {
	res, err := a.alloc(int32(len(b)))
	if err != nil {
		return 0, 0, err
	}
	ptr := toI32(res)
	copy(a.memory.Data()[ptr:], b)
	return ptr, int32(len(b)), nil
}

func toI32(v interface{}) int32 {
	switch n := v.(type) {
	case int32:
		return n
	case int64:
		return int32(n)
	default:
		return 0
	}
}

// --- host import implementations; each reads its JSON args out of guest
// memory, calls the installed Ops, and writes a JSON result back.

func (a *WasmAnalyzer) hostIsCancelled(_, _ int32) (int32, int32) {
	return a.respondJSON(a.ops.IsCancelled())
}

func (a *WasmAnalyzer) hostIsNodeFile(ptr, length int32) (int32, int32) {
	var req struct {
		Path string `json:"path"`
	}
	_ = json.Unmarshal(a.readMemory(ptr, length), &req)
	return a.respondJSON(a.ops.IsNodeFile(context.Background(), req.Path))
}

func (a *WasmAnalyzer) hostLoad(ptr, length int32) (int32, int32) {
	var req struct {
		Specifier string `json:"specifier"`
	}
	_ = json.Unmarshal(a.readMemory(ptr, length), &req)
	return a.respondJSON(a.ops.Load(req.Specifier))
}

func (a *WasmAnalyzer) hostResolve(ptr, length int32) (int32, int32) {
	var req struct {
		Base        string   `json:"base"`
		Specifiers  []string `json:"specifiers"`
	}
	_ = json.Unmarshal(a.readMemory(ptr, length), &req)
	return a.respondJSON(a.ops.Resolve(context.Background(), req.Base, req.Specifiers))
}

func (a *WasmAnalyzer) hostScriptNames(_, _ int32) (int32, int32) {
	return a.respondJSON(a.ops.ScriptNames())
}

func (a *WasmAnalyzer) hostScriptVersion(ptr, length int32) (int32, int32) {
	var req struct {
		Specifier string `json:"specifier"`
	}
	_ = json.Unmarshal(a.readMemory(ptr, length), &req)
	return a.respondJSON(a.ops.ScriptVersion(req.Specifier))
}

func (a *WasmAnalyzer) hostRespond(ptr, length int32) (int32, int32) {
	var req struct {
		ID   uint64          `json:"id"`
		Data json.RawMessage `json:"data"`
	}
	_ = json.Unmarshal(a.readMemory(ptr, length), &req)
	return a.respondJSON(a.ops.Respond(req.ID, req.Data))
}

func (a *WasmAnalyzer) respondJSON(v interface{}) (int32, int32) {
	b, err := json.Marshal(v)
	if err != nil {
		return 0, 0
	}
	ptr, length, err := a.writeMemory(b)
	if err != nil {
		return 0, 0
	}
	return ptr, length
}

// Init sends the bootstrap {debug} payload via server_init.
func (a *WasmAnalyzer) Init(debug bool) error {
	payload := marshalBootstrap(debug)
	ptr, length, err := a.writeMemory(payload)
	if err != nil {
		return err
	}
	_, err = a.serverInit(ptr, length)
	return err
}

// ServerRequest installs ops for the duration of the call, invokes
// server_request, and leaves whatever the guest passed to the respond
// import sitting in ops for the caller to read out.
func (a *WasmAnalyzer) ServerRequest(ops *Ops, payload []byte) error {
	a.ops = ops
	defer func() { a.ops = nil }()

	ptr, length, err := a.writeMemory(payload)
	if err != nil {
		return err
	}
	packed, err := a.serverReq(ptr, length)
	if err != nil {
		return fmt.Errorf("host: analyzer serverRequest threw: %w", err)
	}
	_, _ = unpackPtrLen(toI64(packed))
	return nil
}

func toI64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	default:
		return 0
	}
}

// Close releases the wasmer instance/module/store. wasmer-go objects are
// finalized by the Go GC as well, but an explicit Close lets the host
// thread recreate a fresh runtime promptly on Restart.
func (a *WasmAnalyzer) Close() error {
	if a.instance != nil {
		a.instance.Close()
	}
	if a.module != nil {
		a.module.Close()
	}
	return nil
}
