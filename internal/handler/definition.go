package handler

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tsbridge/internal/request"
	"tsbridge/internal/translate"
	"tsbridge/internal/tsctypes"
)

// spanLookup wraps the bridge call common to Definition/TypeDefinition/
// Implementation/References/DocumentHighlights: request a position, decode
// a []DocumentSpan, and translate it into editor Locations.
func (h *Handler) spanLookup(kind string, specifier string, offset int) []translate.Location {
	snap := h.snapshots.Current()
	var raw []interface{}
	var err error
	switch kind {
	case "definition":
		raw, err = h.bridge.GetDefinition(bgContext(), snap, specifier, offset, request.NewCancelToken())
	case "typeDefinition":
		raw, err = h.bridge.GetTypeDefinition(bgContext(), snap, specifier, offset, request.NewCancelToken())
	case "implementation":
		raw, err = h.bridge.GetImplementation(bgContext(), snap, specifier, offset, request.NewCancelToken())
	case "references":
		raw, err = h.bridge.FindReferences(bgContext(), snap, specifier, offset, request.NewCancelToken())
	case "documentHighlights":
		raw, err = h.bridge.GetDocumentHighlights(bgContext(), snap, specifier, offset, nil, request.NewCancelToken())
	}
	if err != nil || len(raw) == 0 {
		return nil
	}
	var spans []tsctypes.DocumentSpan
	if err := reDecode(raw, &spans); err != nil {
		return nil
	}
	return translate.BuildLocations(spans, h.indexOf)
}

func toProtocolLocations(locs []translate.Location) []protocol.Location {
	out := make([]protocol.Location, 0, len(locs))
	for _, l := range locs {
		out = append(out, protocol.Location{URI: uriOf(l.Specifier), Range: toProtocolRange(l.Start, l.End)})
	}
	return out
}

func (h *Handler) positionedOffset(specifier string, pos protocol.Position) (int, bool) {
	idx := h.indexOf(specifier)
	if idx == nil {
		return 0, false
	}
	offset, _, err := idx.OffsetOfUTF16(lineindexPosition(pos))
	if err != nil {
		return 0, false
	}
	return int(offset), true
}

// Definition handles textDocument/definition.
func (h *Handler) Definition(ctx *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	specifier := h.normalize(string(params.TextDocument.URI))
	offset, ok := h.positionedOffset(specifier, params.Position)
	if !ok {
		return nil, nil
	}
	return toProtocolLocations(h.spanLookup("definition", specifier, offset)), nil
}

// TypeDefinition handles textDocument/typeDefinition.
func (h *Handler) TypeDefinition(ctx *glsp.Context, params *protocol.TypeDefinitionParams) (any, error) {
	specifier := h.normalize(string(params.TextDocument.URI))
	offset, ok := h.positionedOffset(specifier, params.Position)
	if !ok {
		return nil, nil
	}
	return toProtocolLocations(h.spanLookup("typeDefinition", specifier, offset)), nil
}

// Implementation handles textDocument/implementation.
func (h *Handler) Implementation(ctx *glsp.Context, params *protocol.ImplementationParams) (any, error) {
	specifier := h.normalize(string(params.TextDocument.URI))
	offset, ok := h.positionedOffset(specifier, params.Position)
	if !ok {
		return nil, nil
	}
	return toProtocolLocations(h.spanLookup("implementation", specifier, offset)), nil
}

// References handles textDocument/references.
func (h *Handler) References(ctx *glsp.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	specifier := h.normalize(string(params.TextDocument.URI))
	offset, ok := h.positionedOffset(specifier, params.Position)
	if !ok {
		return nil, nil
	}
	return toProtocolLocations(h.spanLookup("references", specifier, offset)), nil
}

// DocumentHighlight handles textDocument/documentHighlight.
func (h *Handler) DocumentHighlight(ctx *glsp.Context, params *protocol.DocumentHighlightParams) ([]protocol.DocumentHighlight, error) {
	specifier := h.normalize(string(params.TextDocument.URI))
	offset, ok := h.positionedOffset(specifier, params.Position)
	if !ok {
		return nil, nil
	}
	locs := h.spanLookup("documentHighlights", specifier, offset)
	out := make([]protocol.DocumentHighlight, 0, len(locs))
	for _, l := range locs {
		out = append(out, protocol.DocumentHighlight{Range: toProtocolRange(l.Start, l.End)})
	}
	return out, nil
}
