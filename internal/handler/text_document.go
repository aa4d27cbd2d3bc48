package handler

import (
	"context"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tsbridge/internal/document"
)

// languageKindOf maps an LSP languageId onto the document package's
// LanguageKind (spec.md §4.7 script kind selection).
func languageKindOf(languageID string) document.LanguageKind {
	switch languageID {
	case "javascript":
		return document.LanguageJavaScript
	case "javascriptreact":
		return document.LanguageJSX
	case "typescript":
		return document.LanguageTypeScript
	case "typescriptreact":
		return document.LanguageTSX
	case "json", "jsonc":
		return document.LanguageJSON
	default:
		return document.LanguageUnknown
	}
}

// DidOpen handles textDocument/didOpen.
func (h *Handler) DidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	specifier := h.normalize(string(params.TextDocument.URI))
	h.store.Open(specifier, params.TextDocument.Text, languageKindOf(params.TextDocument.LanguageID))
	h.publish()
	h.analyze(ctx, specifier)
	return nil
}

// DidChange handles textDocument/didChange (full sync only, matching the
// TextDocumentSyncKindFull capability advertised in CreateServerCapabilities).
func (h *Handler) DidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	specifier := h.normalize(string(params.TextDocument.URI))
	change := params.ContentChanges[len(params.ContentChanges)-1]
	var text string
	switch c := change.(type) {
	case protocol.TextDocumentContentChangeEvent:
		text = c.Text
	case protocol.TextDocumentContentChangeEventWhole:
		text = c.Text
	}
	h.store.Update(specifier, text)
	h.publish()
	h.analyze(ctx, specifier)
	return nil
}

// DidSave handles textDocument/didSave.
func (h *Handler) DidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	specifier := h.normalize(string(params.TextDocument.URI))
	if params.Text != nil {
		h.store.Update(specifier, *params.Text)
		h.publish()
	}
	h.analyze(ctx, specifier)
	return nil
}

// DidClose handles textDocument/didClose.
func (h *Handler) DidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	specifier := h.normalize(string(params.TextDocument.URI))
	h.store.Close(specifier)
	h.publish()
	return nil
}

// bgContext is used for every bridge call triggered from a glsp callback.
// glsp.Context carries the notification/request plumbing the server needs
// to reply on, not a cancellable context.Context for outbound calls, so
// handler-initiated bridge calls use a fresh background context and rely
// on the bridge's own per-request cancel token for cooperative
// cancellation (spec.md §4.6).
func bgContext() context.Context {
	return context.Background()
}
