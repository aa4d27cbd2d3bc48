package handler

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tsbridge/internal/request"
	"tsbridge/internal/translate"
	"tsbridge/internal/tsctypes"
)

// Rename handles textDocument/rename, translating FindRenameLocations'
// per-specifier edit groups (spec.md §4.8 "Rename") into a WorkspaceEdit.
func (h *Handler) Rename(ctx *glsp.Context, params *protocol.RenameParams) (*protocol.WorkspaceEdit, error) {
	specifier := h.normalize(string(params.TextDocument.URI))
	offset, ok := h.positionedOffset(specifier, params.Position)
	if !ok {
		return nil, nil
	}

	snap := h.snapshots.Current()
	raw, err := h.bridge.FindRenameLocations(bgContext(), snap, specifier, offset, false, false, false, request.NewCancelToken())
	if err != nil || len(raw) == 0 {
		return nil, nil
	}

	var locations []tsctypes.RenameLocation
	if err := reDecode(raw, &locations); err != nil {
		return nil, nil
	}

	converted := make([]translate.RenameLocation, 0, len(locations))
	for _, loc := range locations {
		converted = append(converted, translate.RenameLocation{
			Specifier: loc.FileName,
			Start:     loc.TextSpan.Start,
			Length:    loc.TextSpan.Length,
		})
	}

	edits := translate.BuildRenameEdits(converted, params.NewName, h.indexOf, h.scriptVersionOf)

	changes := make(map[protocol.DocumentUri][]protocol.TextEdit, len(edits))
	for _, fe := range edits {
		items := make([]protocol.TextEdit, 0, len(fe.Edits))
		for _, e := range fe.Edits {
			items = append(items, protocol.TextEdit{
				Range:   toProtocolRange(e.Start, e.End),
				NewText: e.NewText,
			})
		}
		changes[uriOf(fe.Specifier)] = items
	}
	return &protocol.WorkspaceEdit{Changes: changes}, nil
}
