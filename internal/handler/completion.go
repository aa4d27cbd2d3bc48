package handler

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tsbridge/internal/lineindex"
	"tsbridge/internal/request"
	"tsbridge/internal/translate"
	"tsbridge/internal/tsctypes"
)

// completionItemKindOf maps the analyzer's ScriptElementKind onto the
// editor's CompletionItemKind. Only the kinds a completion list commonly
// carries are mapped; anything else falls back to Text.
func completionItemKindOf(kind tsctypes.ScriptElementKind) protocol.CompletionItemKind {
	switch kind {
	case "keyword":
		return protocol.CompletionItemKindKeyword
	case "class":
		return protocol.CompletionItemKindClass
	case "interface":
		return protocol.CompletionItemKindInterface
	case "module", "external module name":
		return protocol.CompletionItemKindModule
	case "enum":
		return protocol.CompletionItemKindEnum
	case "enum member":
		return protocol.CompletionItemKindEnumMember
	case "var", "let", "const", "parameter":
		return protocol.CompletionItemKindVariable
	case "function", "local function":
		return protocol.CompletionItemKindFunction
	case "method":
		return protocol.CompletionItemKindMethod
	case "property", "getter", "setter":
		return protocol.CompletionItemKindProperty
	case "type", "type parameter":
		return protocol.CompletionItemKindTypeParameter
	default:
		return protocol.CompletionItemKindText
	}
}

// completionItemData round-trips through CompletionItem.Data so a later
// completionItem/resolve can call GetCompletionDetails for the exact
// entry (by name/source) the original list entry came from, against the
// document/position the list was requested for (spec.md §4.8 "Completion
// details").
type completionItemData struct {
	Specifier string      `json:"specifier"`
	Position  int         `json:"position"`
	EntryName string      `json:"entryName"`
	Source    string      `json:"source"`
	EntryData interface{} `json:"entryData"`
}

func toProtocolCompletionItem(item translate.Item, kind protocol.CompletionItemKind) protocol.CompletionItem {
	out := protocol.CompletionItem{
		Label:     item.Label,
		Kind:      &kind,
		Preselect: &item.Preselect,
		Data:      item.Data,
	}
	if item.InsertText != "" {
		out.InsertText = &item.InsertText
	}
	if item.HasFilterText {
		out.FilterText = &item.FilterText
	}
	if item.SortText != "" {
		out.SortText = &item.SortText
	}
	if len(item.CommitCharacters) > 0 {
		out.CommitCharacters = item.CommitCharacters
	}
	if item.Detail != "" {
		out.Detail = &item.Detail
	}
	if item.Deprecated {
		out.Tags = []protocol.CompletionItemTag{protocol.CompletionItemTagDeprecated}
	}
	if item.TextEdit != nil {
		out.TextEdit = protocol.TextEdit{
			Range:   toProtocolRange(item.TextEdit.Start, item.TextEdit.End),
			NewText: item.TextEdit.NewText,
		}
	}
	return out
}

// Completion handles textDocument/completion, applying every per-entry
// rule in translate.BuildCompletionItem and carrying CompletionInfo's
// IsIncomplete flag through to the returned CompletionList (spec.md §4.8
// "Completions").
func (h *Handler) Completion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	specifier := h.normalize(string(params.TextDocument.URI))
	idx := h.indexOf(specifier)
	if idx == nil {
		return &protocol.CompletionList{IsIncomplete: false, Items: []protocol.CompletionItem{}}, nil
	}
	offset, _, err := idx.OffsetOfUTF16(lineindexPosition(params.Position))
	if err != nil {
		return &protocol.CompletionList{IsIncomplete: false, Items: []protocol.CompletionItem{}}, nil
	}

	snap := h.snapshots.Current()
	raw, err := h.bridge.GetCompletions(bgContext(), snap, specifier, int(offset), nil, nil, request.NewCancelToken())
	if err != nil || raw == nil {
		return &protocol.CompletionList{IsIncomplete: false, Items: []protocol.CompletionItem{}}, nil
	}

	var info tsctypes.CompletionInfo
	if err := reDecode(raw, &info); err != nil {
		return &protocol.CompletionList{IsIncomplete: false, Items: []protocol.CompletionItem{}}, nil
	}

	// completeFunctionCalls has no editor-supplied preference plumbed
	// through GetCompletions yet, so it defaults off, matching the
	// analyzer's own default.
	const completeFunctionCalls = false

	items := make([]protocol.CompletionItem, 0, len(info.Entries))
	for _, e := range info.Entries {
		built := translate.BuildCompletionItem(e, e.IsNewIdentifierLocation, completeFunctionCalls, completionItemData{
			Specifier: specifier,
			Position:  int(offset),
			EntryName: e.Name,
			Source:    e.Source,
			EntryData: e.Data,
		}, idx)
		items = append(items, toProtocolCompletionItem(built, completionItemKindOf(e.Kind)))
	}
	return &protocol.CompletionList{IsIncomplete: info.IsIncomplete, Items: items}, nil
}

// CompletionResolve handles completionItem/resolve, filling in detail and
// documentation via GetCompletionDetails + translate.BuildResolvedCompletionItem
// (spec.md §4.8 "Completion details"). The specifier/position/entry name
// this item was completed against travel in CompletionItem.Data, stashed
// there by Completion above.
func (h *Handler) CompletionResolve(ctx *glsp.Context, params *protocol.CompletionItem) (*protocol.CompletionItem, error) {
	if params.Data == nil {
		return params, nil
	}
	var data completionItemData
	if err := reDecode(params.Data, &data); err != nil || data.EntryName == "" {
		return params, nil
	}

	snap := h.snapshots.Current()
	args := map[string]interface{}{
		"specifier": data.Specifier,
		"position":  data.Position,
		"entryNames": []map[string]interface{}{
			{"name": data.EntryName, "source": data.Source, "data": data.EntryData},
		},
	}
	raw, err := h.bridge.GetCompletionDetails(bgContext(), snap, args, request.NewCancelToken())
	if err != nil || raw == nil {
		return params, nil
	}

	var details tsctypes.CompletionEntryDetails
	if err := reDecode(raw, &details); err != nil {
		return params, nil
	}

	existingDetail := ""
	if params.Detail != nil {
		existingDetail = *params.Detail
	}
	idx := h.indexOf(data.Specifier)
	if idx == nil {
		idx = lineindex.New("")
	}
	resolved := translate.BuildResolvedCompletionItem(details, existingDetail, data.Specifier, idx, nil)

	if resolved.Detail != "" {
		params.Detail = strPtr(resolved.Detail)
	}
	if resolved.Documentation != "" {
		params.Documentation = protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: resolved.Documentation}
	}
	if len(resolved.AdditionalTextEdits) > 0 {
		edits := make([]protocol.TextEdit, 0, len(resolved.AdditionalTextEdits))
		for _, e := range resolved.AdditionalTextEdits {
			edits = append(edits, protocol.TextEdit{Range: toProtocolRange(e.Start, e.End), NewText: e.NewText})
		}
		params.AdditionalTextEdits = edits
	}
	return params, nil
}
