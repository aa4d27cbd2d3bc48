package translate

import (
	"strings"

	"tsbridge/internal/lineindex"
	"tsbridge/internal/tsctypes"
)

// ImportRewriter optionally rewrites the specifier embedded in one
// same-file text change before it is handed back as an additional text
// edit, e.g. via RewriteImportStatement. The auto-import target
// specifier and the original moduleSpecifier text both live on the
// originating completion entry's own `data` field, which this package's
// CompletionEntryDetails translation has no access to (that plumbing
// happens at the facade/handler layer, which does have the original
// CompletionEntry in hand) — so BuildResolvedCompletionItem accepts the
// already-resolved rewrite as a callback instead of trying to recompute
// it from CompletionEntryDetails alone.
type ImportRewriter func(newText string) string

// ResolvedCompletionItem is the bridge's intermediate shape for a
// completionItem/resolve response.
type ResolvedCompletionItem struct {
	Detail              string
	Documentation        string
	AdditionalTextEdits  []TextEdit
	HasRemainingChanges  bool // other-file changes or commands the editor must apply via a follow-up command
}

// BuildResolvedCompletionItem translates a CompletionEntryDetails
// response, per spec.md §4.8 "Completion details" (ported from the
// analyzer's CompletionEntryDetails::as_completion_item and its
// parse_code_actions helper). targetSpecifier is the specifier the
// original completion request was made against (data.specifier in the
// original); changes to any other file only set HasRemainingChanges.
// rewrite, when non-nil, is applied to the new text of every same-file
// text change, the hook for update_import_statement's own
// specifier-rewriting rule. existingDetail
// is the original completion item's own `detail` field, if any — it
// takes priority over the resolved display parts, matching "use the
// original item's detail when already set".
func BuildResolvedCompletionItem(
	details tsctypes.CompletionEntryDetails,
	existingDetail string,
	targetSpecifier string,
	idx *lineindex.Index,
	rewrite ImportRewriter,
) ResolvedCompletionItem {
	out := ResolvedCompletionItem{Detail: existingDetail}
	if out.Detail == "" && len(details.DisplayParts) > 0 {
		out.Detail = ReplaceLinks(DisplayPartsToString(details.DisplayParts))
	}

	if details.Documentation != nil {
		value := DisplayPartsToString(details.Documentation)
		if len(details.Tags) > 0 {
			previews := make([]string, 0, len(details.Tags))
			for _, tag := range details.Tags {
				previews = append(previews, GetTagDocumentation(tag))
			}
			value = value + "\n\n" + strings.Join(previews, "")
		}
		out.Documentation = value
	}

	for _, action := range details.CodeActions {
		for _, change := range action.Changes {
			if change.FileName != targetSpecifier {
				out.HasRemainingChanges = true
				continue
			}
			for _, tc := range change.TextChanges {
				newText := tc.NewText
				if rewrite != nil {
					newText = rewrite(newText)
				}
				out.AdditionalTextEdits = append(out.AdditionalTextEdits, TextEdit{
					Start:   idx.PositionOf(uint32(tc.Span.Start)),
					End:     idx.PositionOf(uint32(tc.Span.End())),
					NewText: newText,
				})
			}
		}
		if len(action.Changes) == 0 {
			out.HasRemainingChanges = true
		}
	}

	return out
}
