package handler

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tsbridge/internal/request"
	"tsbridge/internal/translate"
	"tsbridge/internal/tsctypes"
)

// semanticTokenTypes/semanticTokenModifiers is the legend advertised in
// CreateServerCapabilities and indexed into by the token/modifier values
// DecodeSemanticClassifications produces (spec.md §4.8 "Semantic
// tokens"). The analyzer's classification encoding doesn't name these
// slots itself, so the ordering follows the conventional
// editor-classification-enum layout the analyzer's class numbering
// assumes (class, interface, enum, ... in declaration order) rather than
// anything spec.md or the analyzer's wire format spells out explicitly.
var semanticTokenTypes = []string{
	"class", "enum", "interface", "namespace", "typeParameter", "type",
	"parameter", "variable", "enumMember", "property", "function", "method",
}

var semanticTokenModifiers = []string{
	"declaration", "static", "async", "readonly", "defaultLibrary", "local",
}

func semanticTokensLegend() protocol.SemanticTokensLegend {
	return protocol.SemanticTokensLegend{
		TokenTypes:     semanticTokenTypes,
		TokenModifiers: semanticTokenModifiers,
	}
}

// SemanticTokensFull handles textDocument/semanticTokens/full, encoding
// DecodeSemanticClassifications' output as the LSP delta-encoded
// (deltaLine, deltaStart, length, tokenType, tokenModifiers) quintuples.
func (h *Handler) SemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	specifier := h.normalize(string(params.TextDocument.URI))
	idx := h.indexOf(specifier)
	if idx == nil {
		return nil, nil
	}
	text, ok := h.store.Get(specifier)
	if !ok {
		return nil, nil
	}

	snap := h.snapshots.Current()
	fullSpan := request.Range{Pos: 0, End: len(text)}
	raw, err := h.bridge.GetEncodedSemanticClassifications(bgContext(), snap, specifier, fullSpan, request.NewCancelToken())
	if err != nil || raw == nil {
		return nil, nil
	}

	var resp tsctypes.EncodedSemanticClassifications
	if err := reDecode(raw, &resp); err != nil || len(resp.Spans) == 0 {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}

	tokens, err := translate.DecodeSemanticClassifications(resp.Spans, idx)
	if err != nil {
		return nil, nil
	}

	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32
	for _, t := range tokens {
		deltaLine := t.Range.Line - prevLine
		deltaStart := t.Range.Character
		if deltaLine == 0 {
			deltaStart = t.Range.Character - prevStart
		}
		length := t.EndRange.Character - t.Range.Character
		data = append(data, deltaLine, deltaStart, length, uint32(t.TokenType), uint32(t.Modifiers))
		prevLine = t.Range.Line
		prevStart = t.Range.Character
	}
	return &protocol.SemanticTokens{Data: data}, nil
}
