package translate

import (
	"tsbridge/internal/bridge"
	"tsbridge/internal/lineindex"
)

// semanticTokenModifierMask and typeOffset decode a packed classification
// integer into (type, modifiers), per spec.md §4.8: "type = (classification
// >> TYPE_OFFSET) - 1, modifiers = classification & MODIFIER_MASK".
const (
	semanticTokenTypeOffset = 8
	semanticTokenModifierMask = (1 << semanticTokenTypeOffset) - 1
)

// SemanticToken is one decoded, editor-range-relative classification.
type SemanticToken struct {
	Range     lineindex.Position
	EndRange  lineindex.Position
	TokenType int
	Modifiers int
}

// DecodeSemanticClassifications converts the analyzer's flat
// [offset, length, classification, ...] stream into SemanticTokens using
// idx to translate byte offsets to editor positions. A span crossing a
// line boundary is an InvariantViolation (spec.md §4.8: "reject spans that
// cross a line boundary (return an internal error — these indicate a bug
// upstream)"); a classification not greater than the modifier mask is
// also rejected, matching "require classification > MODIFIER_MASK (else
// programmer error)".
func DecodeSemanticClassifications(stream []int, idx *lineindex.Index) ([]SemanticToken, error) {
	if len(stream)%3 != 0 {
		return nil, &bridge.Error{Kind: bridge.InvariantViolation, Message: "classification stream length is not a multiple of 3"}
	}

	tokens := make([]SemanticToken, 0, len(stream)/3)
	for i := 0; i < len(stream); i += 3 {
		offset, length, classification := stream[i], stream[i+1], stream[i+2]
		if classification <= semanticTokenModifierMask {
			return nil, &bridge.Error{Kind: bridge.InvariantViolation, Message: "classification does not exceed the modifier mask"}
		}
		tokenType := (classification >> semanticTokenTypeOffset) - 1
		modifiers := classification & semanticTokenModifierMask

		start := idx.PositionOf(uint32(offset))
		end := idx.PositionOf(uint32(offset + length))
		if start.Line != end.Line {
			return nil, &bridge.Error{Kind: bridge.InvariantViolation, Message: "semantic token span crosses a line boundary"}
		}

		tokens = append(tokens, SemanticToken{
			Range:     start,
			EndRange:  end,
			TokenType: tokenType,
			Modifiers: modifiers,
		})
	}
	return tokens, nil
}
