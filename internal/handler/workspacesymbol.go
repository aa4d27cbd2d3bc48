package handler

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tsbridge/internal/request"
	"tsbridge/internal/tsctypes"
)

// WorkspaceSymbol handles workspace/symbol: a workspace-wide fuzzy search
// over every diagnosable document's navigation entries (spec.md §4.8
// "Workspace symbol search"), backed by GetNavigateToItems.
func (h *Handler) WorkspaceSymbol(ctx *glsp.Context, params *protocol.WorkspaceSymbolParams) ([]protocol.SymbolInformation, error) {
	snap := h.snapshots.Current()
	raw, err := h.bridge.GetNavigateToItems(bgContext(), snap, params.Query, 0, "", request.NewCancelToken())
	if err != nil || len(raw) == 0 {
		return nil, nil
	}

	var items []tsctypes.NavigateToItem
	if err := reDecode(raw, &items); err != nil {
		return nil, nil
	}

	out := make([]protocol.SymbolInformation, 0, len(items))
	for _, item := range items {
		idx := h.indexOf(item.FileName)
		if idx == nil {
			continue
		}
		start := idx.PositionOf(uint32(item.TextSpan.Start))
		end := idx.PositionOf(uint32(item.TextSpan.End()))
		info := protocol.SymbolInformation{
			Name: item.Name,
			Kind: symbolKindOf(item.Kind),
			Location: protocol.Location{
				URI:   uriOf(item.FileName),
				Range: toProtocolRange(start, end),
			},
		}
		if item.ContainerName != "" {
			container := item.ContainerName
			info.ContainerName = &container
		}
		out = append(out, info)
	}
	return out, nil
}
