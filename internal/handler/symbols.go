package handler

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tsbridge/internal/lineindex"
	"tsbridge/internal/request"
	"tsbridge/internal/translate"
	"tsbridge/internal/tsctypes"
)

func symbolKindOf(kind tsctypes.ScriptElementKind) protocol.SymbolKind {
	switch kind {
	case "class":
		return protocol.SymbolKindClass
	case "interface":
		return protocol.SymbolKindInterface
	case "enum":
		return protocol.SymbolKindEnum
	case "enum member":
		return protocol.SymbolKindEnumMember
	case "module", "external module name":
		return protocol.SymbolKindModule
	case "function", "local function":
		return protocol.SymbolKindFunction
	case "method":
		return protocol.SymbolKindMethod
	case "property", "getter", "setter":
		return protocol.SymbolKindProperty
	case "var", "let", "const", "local var":
		return protocol.SymbolKindVariable
	case "constructor":
		return protocol.SymbolKindConstructor
	default:
		return protocol.SymbolKindVariable
	}
}

func toProtocolDocumentSymbols(symbols []translate.DocumentSymbol, idx *lineindex.Index) []protocol.DocumentSymbol {
	out := make([]protocol.DocumentSymbol, 0, len(symbols))
	for _, s := range symbols {
		detail := s.Detail
		out = append(out, protocol.DocumentSymbol{
			Name:           s.Name,
			Detail:         &detail,
			Kind:           symbolKindOf(tsctypes.ScriptElementKind(s.Detail)),
			Range:          toProtocolRange(idx.PositionOf(uint32(s.Range.Start)), idx.PositionOf(uint32(s.Range.End()))),
			SelectionRange: toProtocolRange(idx.PositionOf(uint32(s.SelectionRange.Start)), idx.PositionOf(uint32(s.SelectionRange.End()))),
			Children:       toProtocolDocumentSymbols(s.Children, idx),
		})
	}
	return out
}

// DocumentSymbol handles textDocument/documentSymbol.
func (h *Handler) DocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	specifier := h.normalize(string(params.TextDocument.URI))
	idx := h.indexOf(specifier)
	if idx == nil {
		return []protocol.DocumentSymbol{}, nil
	}
	snap := h.snapshots.Current()
	raw, err := h.bridge.GetNavigationTree(bgContext(), snap, specifier, request.NewCancelToken())
	if err != nil || raw == nil {
		return []protocol.DocumentSymbol{}, nil
	}
	var tree tsctypes.NavigationTree
	if err := reDecode(raw, &tree); err != nil {
		return []protocol.DocumentSymbol{}, nil
	}
	symbols := translate.BuildDocumentSymbols(tree)
	return toProtocolDocumentSymbols(symbols, idx), nil
}

func foldingRangeKindOf(kind string) protocol.FoldingRangeKind {
	return protocol.FoldingRangeKind(kind)
}

// FoldingRange handles textDocument/foldingRange.
func (h *Handler) FoldingRange(ctx *glsp.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	specifier := h.normalize(string(params.TextDocument.URI))
	text, ok := h.store.Get(specifier)
	if !ok {
		return nil, nil
	}
	idx := h.indexOf(specifier)
	snap := h.snapshots.Current()
	raw, err := h.bridge.GetOutliningSpans(bgContext(), snap, specifier, request.NewCancelToken())
	if err != nil || len(raw) == 0 {
		return nil, nil
	}
	var spans []tsctypes.OutliningSpan
	if err := reDecode(raw, &spans); err != nil {
		return nil, nil
	}
	out := make([]protocol.FoldingRange, 0, len(spans))
	for _, s := range spans {
		fr := translate.BuildFoldingRange(s, idx, []byte(text), true)
		var kindPtr *protocol.FoldingRangeKind
		if fr.Kind != "" {
			k := foldingRangeKindOf(fr.Kind)
			kindPtr = &k
		}
		out = append(out, protocol.FoldingRange{
			StartLine: uint32(fr.StartLine),
			EndLine:   uint32(fr.EndLine),
			Kind:      kindPtr,
		})
	}
	return out, nil
}
