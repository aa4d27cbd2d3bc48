package handler

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tsbridge/internal/request"
	"tsbridge/internal/translate"
	"tsbridge/internal/tsctypes"
)

func inlayHintKindOf(kind translate.InlayKind) *protocol.InlayHintKind {
	switch kind {
	case translate.InlayKindType:
		k := protocol.InlayHintKindType
		return &k
	case translate.InlayKindParameter:
		k := protocol.InlayHintKindParameter
		return &k
	default:
		return nil
	}
}

// InlayHint handles textDocument/inlayHint.
func (h *Handler) InlayHint(ctx *glsp.Context, params *protocol.InlayHintParams) ([]protocol.InlayHint, error) {
	specifier := h.normalize(string(params.TextDocument.URI))
	idx := h.indexOf(specifier)
	if idx == nil {
		return nil, nil
	}
	start, _, err := idx.OffsetOfUTF16(lineindexPosition(params.Range.Start))
	if err != nil {
		return nil, nil
	}
	end, _, err := idx.OffsetOfUTF16(lineindexPosition(params.Range.End))
	if err != nil {
		return nil, nil
	}

	snap := h.snapshots.Current()
	raw, err := h.bridge.ProvideInlayHints(bgContext(), snap, specifier, request.Range{Pos: int(start), End: int(end)}, nil, request.NewCancelToken())
	if err != nil || len(raw) == 0 {
		return nil, nil
	}

	var hints []tsctypes.InlayHint
	if err := reDecode(raw, &hints); err != nil {
		return nil, nil
	}

	out := make([]protocol.InlayHint, 0, len(hints))
	for _, hint := range hints {
		rendered := translate.BuildInlayHint(hint, idx)
		out = append(out, protocol.InlayHint{
			Position:     protocolPosition(rendered.Position),
			Label:        rendered.Text,
			Kind:         inlayHintKindOf(rendered.Kind),
			PaddingLeft:  &rendered.PaddingLeft,
			PaddingRight: &rendered.PaddingRight,
		})
	}
	return out, nil
}
