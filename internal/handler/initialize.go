package handler

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialize handles the LSP initialize request and returns server capabilities.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	return protocol.InitializeResult{
		Capabilities: h.CreateServerCapabilities(),
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    "tsbridge",
			Version: strPtr(version),
		},
	}, nil
}

// Initialized is called after the client acknowledges initialize.
func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

// Shutdown gracefully shuts the server down, stopping the Host's dedicated
// analyzer thread (spec.md §4.6).
func (h *Handler) Shutdown(ctx *glsp.Context) error {
	h.Close()
	return nil
}

// SetTrace updates the trace level (no-op: tracing is left to commonlog's
// own verbosity configuration).
func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// CreateServerCapabilities returns the capabilities advertised to the
// client, one per bridge facade operation this handler wires up (spec.md
// §6.2).
func (h *Handler) CreateServerCapabilities() protocol.ServerCapabilities {
	syncKind := protocol.TextDocumentSyncKindFull
	triggerChars := []string{".", "\"", "'", "/", "@", "<"}
	trueVal := true

	return protocol.ServerCapabilities{
		TextDocumentSync: &protocol.TextDocumentSyncOptions{
			OpenClose: boolPtr(true),
			Change:    &syncKind,
			Save:      &protocol.SaveOptions{IncludeText: boolPtr(true)},
		},
		HoverProvider: true,
		CompletionProvider: &protocol.CompletionOptions{
			TriggerCharacters: triggerChars,
			ResolveProvider:   boolPtr(true),
		},
		DefinitionProvider:     true,
		TypeDefinitionProvider: true,
		ImplementationProvider: true,
		ReferencesProvider:     true,
		DocumentHighlightProvider: true,
		DocumentSymbolProvider:    true,
		FoldingRangeProvider:      true,
		RenameProvider: &protocol.RenameOptions{
			PrepareProvider: &trueVal,
		},
		CodeActionProvider: &protocol.CodeActionOptions{
			ResolveProvider: boolPtr(true),
		},
		CallHierarchyProvider:     true,
		InlayHintProvider:         true,
		WorkspaceSymbolProvider:   true,
		SelectionRangeProvider:    true,
		SignatureHelpProvider: &protocol.SignatureHelpOptions{
			TriggerCharacters: []string{"(", ","},
		},
		SemanticTokensProvider: &protocol.SemanticTokensOptions{
			Legend: semanticTokensLegend(),
			Full:   true,
		},
		ExecuteCommandProvider: &protocol.ExecuteCommandOptions{
			Commands: []string{commandRestart, commandFixAll},
		},
	}
}

func boolPtr(b bool) *bool { return &b }
