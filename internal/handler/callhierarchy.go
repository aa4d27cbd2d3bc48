package handler

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tsbridge/internal/request"
	"tsbridge/internal/translate"
	"tsbridge/internal/tsctypes"
)

func toProtocolCallHierarchyItem(item translate.CallHierarchyItem) protocol.CallHierarchyItem {
	detail := item.Detail
	return protocol.CallHierarchyItem{
		Name:           item.Name,
		Kind:           symbolKindOf(item.Kind),
		Detail:         &detail,
		URI:            uriOf(item.Specifier),
		Range:          toProtocolRange(item.Range, item.RangeEnd),
		SelectionRange: toProtocolRange(item.SelectionRange, item.SelectionEnd),
	}
}

// PrepareCallHierarchy handles textDocument/prepareCallHierarchy.
func (h *Handler) PrepareCallHierarchy(ctx *glsp.Context, params *protocol.CallHierarchyPrepareParams) ([]protocol.CallHierarchyItem, error) {
	specifier := h.normalize(string(params.TextDocument.URI))
	offset, ok := h.positionedOffset(specifier, params.Position)
	if !ok {
		return nil, nil
	}
	snap := h.snapshots.Current()
	raw, err := h.bridge.PrepareCallHierarchy(bgContext(), snap, specifier, offset, request.NewCancelToken())
	if err != nil || len(raw) == 0 {
		return nil, nil
	}
	var items []tsctypes.CallHierarchyItem
	if err := reDecode(raw, &items); err != nil {
		return nil, nil
	}
	out := make([]protocol.CallHierarchyItem, 0, len(items))
	for _, it := range items {
		idx := h.indexOf(it.File)
		if idx == nil {
			continue
		}
		out = append(out, toProtocolCallHierarchyItem(translate.BuildCallHierarchyItem(it, idx)))
	}
	return out, nil
}

// CallHierarchyIncomingCalls handles callHierarchy/incomingCalls.
func (h *Handler) CallHierarchyIncomingCalls(ctx *glsp.Context, params *protocol.CallHierarchyIncomingCallsParams) ([]protocol.CallHierarchyIncomingCall, error) {
	specifier := string(params.Item.URI)
	offset, ok := h.positionedOffset(specifier, params.Item.SelectionRange.Start)
	if !ok {
		return nil, nil
	}
	snap := h.snapshots.Current()
	raw, err := h.bridge.ProvideCallHierarchyIncomingCalls(bgContext(), snap, specifier, offset, request.NewCancelToken())
	if err != nil || len(raw) == 0 {
		return nil, nil
	}
	var calls []tsctypes.CallHierarchyIncomingCall
	if err := reDecode(raw, &calls); err != nil {
		return nil, nil
	}
	out := make([]protocol.CallHierarchyIncomingCall, 0, len(calls))
	for _, c := range calls {
		callerIdx := h.indexOf(c.From.File)
		if callerIdx == nil {
			continue
		}
		built := translate.BuildIncomingCall(c, callerIdx)
		ranges := make([]protocol.Range, 0, len(built.FromRanges))
		for _, r := range built.FromRanges {
			ranges = append(ranges, toProtocolRange(r, r))
		}
		out = append(out, protocol.CallHierarchyIncomingCall{
			From:       toProtocolCallHierarchyItem(built.From),
			FromRanges: ranges,
		})
	}
	return out, nil
}

// CallHierarchyOutgoingCalls handles callHierarchy/outgoingCalls.
func (h *Handler) CallHierarchyOutgoingCalls(ctx *glsp.Context, params *protocol.CallHierarchyOutgoingCallsParams) ([]protocol.CallHierarchyOutgoingCall, error) {
	specifier := string(params.Item.URI)
	offset, ok := h.positionedOffset(specifier, params.Item.SelectionRange.Start)
	if !ok {
		return nil, nil
	}
	snap := h.snapshots.Current()
	raw, err := h.bridge.ProvideCallHierarchyOutgoingCalls(bgContext(), snap, specifier, offset, request.NewCancelToken())
	if err != nil || len(raw) == 0 {
		return nil, nil
	}
	var calls []tsctypes.CallHierarchyOutgoingCall
	if err := reDecode(raw, &calls); err != nil {
		return nil, nil
	}
	callerIdx := h.indexOf(specifier)
	out := make([]protocol.CallHierarchyOutgoingCall, 0, len(calls))
	for _, c := range calls {
		calleeIdx := h.indexOf(c.To.File)
		if calleeIdx == nil || callerIdx == nil {
			continue
		}
		built := translate.BuildOutgoingCall(c, calleeIdx, callerIdx)
		ranges := make([]protocol.Range, 0, len(built.FromRanges))
		for _, r := range built.FromRanges {
			ranges = append(ranges, toProtocolRange(r, r))
		}
		out = append(out, protocol.CallHierarchyOutgoingCall{
			To:         toProtocolCallHierarchyItem(built.To),
			FromRanges: ranges,
		})
	}
	return out, nil
}
