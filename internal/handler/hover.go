package handler

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tsbridge/internal/request"
	"tsbridge/internal/translate"
	"tsbridge/internal/tsctypes"
)

// Hover handles textDocument/hover, translating the analyzer's QuickInfo
// response (spec.md §4.8 "Hover") into a markdown-rendered Hover.
func (h *Handler) Hover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	specifier := h.normalize(string(params.TextDocument.URI))
	idx := h.indexOf(specifier)
	if idx == nil {
		return nil, nil
	}
	offset, _, err := idx.OffsetOfUTF16(lineindexPosition(params.Position))
	if err != nil {
		return nil, nil
	}

	snap := h.snapshots.Current()
	raw, err := h.bridge.GetQuickInfo(bgContext(), snap, specifier, int(offset), request.NewCancelToken())
	if err != nil || raw == nil {
		return nil, nil
	}

	var info tsctypes.QuickInfo
	if err := reDecode(raw, &info); err != nil {
		return nil, nil
	}

	parts := translate.BuildHover(info)
	if len(parts) == 0 {
		return nil, nil
	}
	value := ""
	for i, p := range parts {
		if i > 0 {
			value += "\n\n"
		}
		if p.Language != "" {
			value += "```" + p.Language + "\n" + p.Value + "\n```"
		} else {
			value += p.Value
		}
	}

	hoverRange := toProtocolRange(idx.PositionOf(uint32(info.TextSpan.Start)), idx.PositionOf(uint32(info.TextSpan.End())))
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: value},
		Range:    &hoverRange,
	}, nil
}
