package handler

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tsbridge/internal/request"
	"tsbridge/internal/translate"
	"tsbridge/internal/tsctypes"
)

const (
	commandRestart = "tsbridge.restart"
	commandFixAll  = "tsbridge.fixAll"
)

// ExecuteCommand handles workspace/executeCommand for the two commands
// this bridge exposes: restarting the analyzer process (spec.md §4.6
// "Host Loop" Restart) and applying every fix sharing one analyzer fix id
// across a file (GetCombinedCodeFix, spec.md §6.2's GetSupportedCodeFixes/
// GetCombinedCodeFix pair).
func (h *Handler) ExecuteCommand(ctx *glsp.Context, params *protocol.ExecuteCommandParams) (any, error) {
	switch params.Command {
	case commandRestart:
		return nil, h.bridge.Restart(bgContext())
	case commandFixAll:
		return h.fixAll(params.Arguments)
	default:
		return nil, nil
	}
}

// fixAll expects Arguments[0] to be the document URI and Arguments[1] the
// analyzer fix id (as CodeAction puts it in the command) to apply
// everywhere in that file, matching the
// codeAction/fixAll convention most LSP clients use to invoke a
// source.fixAll command they received as a CodeAction.Command.
func (h *Handler) fixAll(args []interface{}) (*protocol.WorkspaceEdit, error) {
	if len(args) < 2 {
		return nil, nil
	}
	uri, ok := args[0].(string)
	if !ok {
		return nil, nil
	}
	var fixID interface{}
	switch v := args[1].(type) {
	case float64:
		fixID = int(v)
	default:
		fixID = v
	}

	specifier := h.normalize(uri)
	snap := h.snapshots.Current()
	raw, err := h.bridge.GetCombinedCodeFix(bgContext(), snap, specifier, fixID, nil, request.NewCancelToken())
	if err != nil || raw == nil {
		return nil, nil
	}
	var combined tsctypes.CombinedCodeActions
	if err := reDecode(raw, &combined); err != nil {
		return nil, nil
	}
	groups := translate.BuildCombinedCodeFix(combined, h.indexOf)
	return toWorkspaceEdit(groups), nil
}
