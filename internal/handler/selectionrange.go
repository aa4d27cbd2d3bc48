package handler

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tsbridge/internal/lineindex"
	"tsbridge/internal/request"
	"tsbridge/internal/tsctypes"
)

func toProtocolSelectionRange(sel tsctypes.SelectionRange, idx *lineindex.Index) *protocol.SelectionRange {
	out := &protocol.SelectionRange{
		Range: toProtocolRange(idx.PositionOf(uint32(sel.TextSpan.Start)), idx.PositionOf(uint32(sel.TextSpan.End()))),
	}
	if sel.Parent != nil {
		out.Parent = toProtocolSelectionRange(*sel.Parent, idx)
	}
	return out
}

// SelectionRange handles textDocument/selectionRange: expanding selection
// outward one enclosing syntax node at a time (spec.md §4.8 "Selection
// range"), backed by GetSmartSelectionRange.
func (h *Handler) SelectionRange(ctx *glsp.Context, params *protocol.SelectionRangeParams) ([]protocol.SelectionRange, error) {
	specifier := h.normalize(string(params.TextDocument.URI))
	idx := h.indexOf(specifier)
	if idx == nil {
		return nil, nil
	}
	snap := h.snapshots.Current()

	out := make([]protocol.SelectionRange, 0, len(params.Positions))
	for _, pos := range params.Positions {
		offset, _, err := idx.OffsetOfUTF16(lineindexPosition(pos))
		if err != nil {
			continue
		}
		raw, err := h.bridge.GetSmartSelectionRange(bgContext(), snap, specifier, int(offset), request.NewCancelToken())
		if err != nil || raw == nil {
			continue
		}
		var sel tsctypes.SelectionRange
		if err := reDecode(raw, &sel); err != nil {
			continue
		}
		out = append(out, *toProtocolSelectionRange(sel, idx))
	}
	return out, nil
}
