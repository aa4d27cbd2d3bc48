package server

import (
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspServer "github.com/tliron/glsp/server"

	"tsbridge/internal/handler"
	"tsbridge/internal/host"
)

// Run wires a Handler around a WebAssembly Analyzer factory and starts the
// LSP server on stdio. wasmBytes is the compiled analyzer script bundle
// (spec.md §4.1); debug toggles the analyzer's own debug logging.
func Run(logLevel string, wasmBytes []byte, debug bool) error {
	configureLogging(logLevel)

	recorder := host.NewRecorder(nil)
	factory := func() (host.Analyzer, error) {
		return host.NewWasmAnalyzer(wasmBytes)
	}
	h := handler.New(factory, recorder, debug, nil, nil)

	lspHandler := protocol.Handler{
		Initialize:                    h.Initialize,
		Initialized:                   h.Initialized,
		Shutdown:                      h.Shutdown,
		SetTrace:                      h.SetTrace,
		TextDocumentDidOpen:           h.DidOpen,
		TextDocumentDidChange:         h.DidChange,
		TextDocumentDidSave:           h.DidSave,
		TextDocumentDidClose:          h.DidClose,
		TextDocumentCompletion:        h.Completion,
		TextDocumentHover:             h.Hover,
		TextDocumentDefinition:        h.Definition,
		TextDocumentTypeDefinition:    h.TypeDefinition,
		TextDocumentImplementation:    h.Implementation,
		TextDocumentReferences:        h.References,
		TextDocumentDocumentHighlight: h.DocumentHighlight,
		TextDocumentDocumentSymbol:    h.DocumentSymbol,
		TextDocumentFoldingRange:      h.FoldingRange,
		TextDocumentRename:            h.Rename,
		TextDocumentCodeAction:        h.CodeAction,
		TextDocumentInlayHint:         h.InlayHint,
		CallHierarchyIncomingCalls:    h.CallHierarchyIncomingCalls,
		CallHierarchyOutgoingCalls:    h.CallHierarchyOutgoingCalls,
		TextDocumentPrepareCallHierarchy: h.PrepareCallHierarchy,
		WorkspaceSymbol:               h.WorkspaceSymbol,
		TextDocumentSelectionRange:    h.SelectionRange,
		TextDocumentSignatureHelp:     h.SignatureHelp,
		TextDocumentSemanticTokensFull: h.SemanticTokensFull,
		WorkspaceExecuteCommand:       h.ExecuteCommand,
		CompletionItemResolve:         h.CompletionResolve,
		CodeActionResolve:             h.CodeActionResolve,
	}

	s := glspServer.NewServer(&lspHandler, "tsbridge", false)
	return s.RunStdio()
}

func configureLogging(level string) {
	// commonlog.Configure verbosity: 1=Error, 2=Warning, 3=Notice, 4=Info, 5=Debug
	verbosity := 2 // Warning by default
	switch level {
	case "debug":
		verbosity = 5
	case "info":
		verbosity = 4
	case "warning", "warn":
		verbosity = 2
	case "error":
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)
}
