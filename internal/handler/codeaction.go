package handler

import (
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tsbridge/internal/request"
	"tsbridge/internal/translate"
	"tsbridge/internal/tsctypes"
)

// fixIDString normalizes a fixId value (the analyzer emits either a bare
// string or a {type, file} object, per tsctypes.CodeFixAction.FixID's
// interface{} typing) into a comparison key.
func fixIDString(id interface{}) string {
	if s, ok := id.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", id)
}

// supportedFixIDs fetches the analyzer's whole-project fix-id list once
// per CodeAction call so fixable diagnostics can offer a "fix all" command
// (spec.md §6.2's GetSupportedCodeFixes/GetCombinedCodeFix pair).
func (h *Handler) supportedFixIDs() map[string]bool {
	raw, err := h.bridge.GetSupportedCodeFixes(bgContext(), h.snapshots.Current(), request.NewCancelToken())
	if err != nil || len(raw) == 0 {
		return nil
	}
	out := make(map[string]bool, len(raw))
	for _, v := range raw {
		out[fixIDString(v)] = true
	}
	return out
}

func toWorkspaceEdit(groups []translate.FileEditGroup) *protocol.WorkspaceEdit {
	changes := make(map[protocol.DocumentUri][]protocol.TextEdit, len(groups))
	for _, g := range groups {
		items := make([]protocol.TextEdit, 0, len(g.Edits))
		for _, e := range g.Edits {
			items = append(items, protocol.TextEdit{Range: toProtocolRange(e.Start, e.End), NewText: e.NewText})
		}
		changes[uriOf(g.Specifier)] = items
	}
	return &protocol.WorkspaceEdit{Changes: changes}
}

// CodeAction handles textDocument/codeAction: quick fixes for the
// diagnostics in range (spec.md §4.8 "Code actions & refactors"), backed
// by GetCodeFixes. Refactor actions are offered via GetApplicableRefactors
// over the same range.
func (h *Handler) CodeAction(ctx *glsp.Context, params *protocol.CodeActionParams) ([]protocol.CodeAction, error) {
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

	errorCodes := make([]int, 0, len(params.Context.Diagnostics))
	for _, d := range params.Context.Diagnostics {
		if d.Code != nil {
			errorCodes = append(errorCodes, int(d.Code.Value.(float64)))
		}
	}

	out := []protocol.CodeAction{}
	snap := h.snapshots.Current()

	if len(errorCodes) > 0 {
		raw, err := h.bridge.GetCodeFixes(bgContext(), snap, specifier, int(start), int(end), errorCodes, nil, request.NewCancelToken())
		if err == nil && len(raw) > 0 {
			var actions []tsctypes.CodeFixAction
			if reDecode(raw, &actions) == nil {
				supported := h.supportedFixIDs()
				for _, a := range actions {
					fix := translate.BuildCodeFix(a, h.indexOf)
					kind := protocol.CodeActionKindQuickFix
					action := protocol.CodeAction{
						Title: fix.Title,
						Kind:  &kind,
						Edit:  toWorkspaceEdit(fix.Edits),
					}
					if a.FixID != nil && supported[fixIDString(a.FixID)] {
						action.Command = &protocol.Command{
							Title:     fix.FixAllDescription,
							Command:   commandFixAll,
							Arguments: []interface{}{string(uriOf(specifier)), a.FixID},
						}
					}
					out = append(out, action)
				}
			}
		}
	}

	rawRefactors, err := h.bridge.GetApplicableRefactors(bgContext(), snap, specifier, request.Range{Pos: int(start), End: int(end)}, "", request.NewCancelToken())
	if err == nil && len(rawRefactors) > 0 {
		var infos []tsctypes.ApplicableRefactorInfo
		if reDecode(rawRefactors, &infos) == nil {
			for _, info := range infos {
				for _, action := range translate.BuildRefactorCodeActions(info) {
					if action.Disabled {
						continue
					}
					kind := protocol.CodeActionKind(action.Kind)
					preferred := action.IsPreferred
					out = append(out, protocol.CodeAction{
						Title:       action.Title,
						Kind:        &kind,
						IsPreferred: &preferred,
						Data:        refactorActionData{Specifier: specifier, Start: int(start), End: int(end), RefactorName: action.RefactorName, ActionName: action.ActionName},
					})
				}
			}
		}
	}

	return out, nil
}

// refactorActionData round-trips through CodeAction.Data so a later
// codeAction/resolve (or an eagerly-applied edit, for clients that don't
// resolve) can call GetEditsForRefactor with the exact (refactorName,
// actionName) pair this action represents.
type refactorActionData struct {
	Specifier    string `json:"specifier"`
	Start        int    `json:"start"`
	End          int    `json:"end"`
	RefactorName string `json:"refactorName"`
	ActionName   string `json:"actionName"`
}

// CodeActionResolve handles codeAction/resolve for refactor actions,
// filling in the Edit field via GetEditsForRefactor.
func (h *Handler) CodeActionResolve(ctx *glsp.Context, action *protocol.CodeAction) (*protocol.CodeAction, error) {
	if action.Data == nil {
		return action, nil
	}
	// action.Data has round-tripped through JSON as an opaque wire value
	// (a client echoes codeAction/resolve's Data back as whatever it
	// received, not as this process's original Go struct), so it must be
	// reshaped rather than type-asserted directly.
	var data refactorActionData
	if err := reDecode(action.Data, &data); err != nil || data.RefactorName == "" {
		return action, nil
	}
	snap := h.snapshots.Current()
	raw, err := h.bridge.GetEditsForRefactor(bgContext(), snap, data.Specifier, nil, request.Range{Pos: data.Start, End: data.End}, data.RefactorName, data.ActionName, request.NewCancelToken())
	if err != nil || raw == nil {
		return action, nil
	}
	var edit tsctypes.RefactorEditInfo
	if err := reDecode(raw, &edit); err != nil {
		return action, nil
	}
	groups := make([]translate.FileEditGroup, 0, len(edit.Edits))
	for _, change := range edit.Edits {
		idx := h.indexOf(change.FileName)
		if idx == nil {
			continue
		}
		edits := make([]translate.TextEdit, 0, len(change.TextChanges))
		for _, tc := range change.TextChanges {
			edits = append(edits, translate.TextEdit{
				Start:   idx.PositionOf(uint32(tc.Span.Start)),
				End:     idx.PositionOf(uint32(tc.Span.End())),
				NewText: tc.NewText,
			})
		}
		groups = append(groups, translate.FileEditGroup{Specifier: change.FileName, Edits: edits})
	}
	action.Edit = toWorkspaceEdit(groups)
	return action, nil
}
