package handler

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tsbridge/internal/request"
	"tsbridge/internal/translate"
	"tsbridge/internal/tsctypes"
)

func toProtocolSignatureInformation(item tsctypes.SignatureHelpItem) protocol.SignatureInformation {
	label := translate.DisplayPartsToString(item.PrefixDisplayParts)
	params := make([]protocol.ParameterInformation, 0, len(item.Parameters))
	for i, p := range item.Parameters {
		if i > 0 {
			label += translate.DisplayPartsToString(item.SeparatorDisplayParts)
		}
		pLabel := translate.DisplayPartsToString(p.DisplayParts)
		label += pLabel
		info := protocol.ParameterInformation{Label: pLabel}
		if doc := translate.DisplayPartsToString(p.Documentation); doc != "" {
			info.Documentation = protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: doc}
		}
		params = append(params, info)
	}
	label += translate.DisplayPartsToString(item.SuffixDisplayParts)

	sig := protocol.SignatureInformation{
		Label:      label,
		Parameters: params,
	}
	if doc := translate.DisplayPartsToString(item.Documentation); doc != "" {
		sig.Documentation = protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: doc}
	}
	return sig
}

// SignatureHelp handles textDocument/signatureHelp (spec.md §4.8
// "Signature help"), backed by GetSignatureHelpItems.
func (h *Handler) SignatureHelp(ctx *glsp.Context, params *protocol.SignatureHelpParams) (*protocol.SignatureHelp, error) {
	specifier := h.normalize(string(params.TextDocument.URI))
	offset, ok := h.positionedOffset(specifier, params.Position)
	if !ok {
		return nil, nil
	}
	snap := h.snapshots.Current()
	raw, err := h.bridge.GetSignatureHelpItems(bgContext(), snap, specifier, offset, nil, request.NewCancelToken())
	if err != nil || raw == nil {
		return nil, nil
	}

	var items tsctypes.SignatureHelpItems
	if err := reDecode(raw, &items); err != nil || len(items.Items) == 0 {
		return nil, nil
	}

	signatures := make([]protocol.SignatureInformation, 0, len(items.Items))
	for _, item := range items.Items {
		signatures = append(signatures, toProtocolSignatureInformation(item))
	}
	active := uint32(items.SelectedItemIndex)
	activeParam := uint32(items.ArgumentIndex)
	return &protocol.SignatureHelp{
		Signatures:      signatures,
		ActiveSignature: &active,
		ActiveParameter: &activeParam,
	}, nil
}
