package translate

import (
	"tsbridge/internal/lineindex"
	"tsbridge/internal/tsctypes"
)

// RenderedInlayHint is the bridge's intermediate shape for one inlay
// hint, independent of the exact LSP protocol struct. Kind is zero
// (absent) for InlayHintKindEnumMember, matching the analyzer's own
// InlayHintKind::to_lsp, which maps the enum-member kind to "no LSP
// kind" since LSP 3.16's InlayHintKind has no enum-member member.
type RenderedInlayHint struct {
	Position        lineindex.Position
	Text            string
	Kind            InlayKind
	PaddingLeft     bool
	PaddingRight    bool
}

// InlayKind mirrors LSP's InlayHintKind enum (1 Type, 2 Parameter). Zero
// means "no kind".
type InlayKind int

const (
	InlayKindNone      InlayKind = 0
	InlayKindType      InlayKind = 1
	InlayKindParameter InlayKind = 2
)

func inlayKindOf(kind tsctypes.InlayHintKind) InlayKind {
	switch kind {
	case tsctypes.InlayHintKindType:
		return InlayKindType
	case tsctypes.InlayHintKindParameter:
		return InlayKindParameter
	default:
		return InlayKindNone
	}
}

// BuildInlayHint translates one analyzer InlayHint using idx to convert
// its byte offset position into an editor position, per spec.md §4.8
// "Inlay hints" (ported from the analyzer's InlayHint::to_lsp).
func BuildInlayHint(hint tsctypes.InlayHint, idx *lineindex.Index) RenderedInlayHint {
	return RenderedInlayHint{
		Position:     idx.PositionOf(uint32(hint.Position)),
		Text:         hint.Text,
		Kind:         inlayKindOf(hint.Kind),
		PaddingLeft:  hint.WhitespaceBefore,
		PaddingRight: hint.WhitespaceAfter,
	}
}

// BuildInlayHints translates a whole analyzer inlay-hint list for one
// file.
func BuildInlayHints(hints []tsctypes.InlayHint, idx *lineindex.Index) []RenderedInlayHint {
	out := make([]RenderedInlayHint, 0, len(hints))
	for _, h := range hints {
		out = append(out, BuildInlayHint(h, idx))
	}
	return out
}
