package translate

import (
	"tsbridge/internal/lineindex"
	"tsbridge/internal/tsctypes"
)

// foldEndPairCharacters are the closing characters for which, under
// line-folding-only clients, the fold is pulled up to end on the
// previous line instead of the line the pair character itself sits on
// (spec.md §4.8 "Folding ranges"; ported from the analyzer's own
// FOLD_END_PAIR_CHARACTERS list).
var foldEndPairCharacters = map[byte]bool{
	'}': true,
	']': true,
	')': true,
	'`': true,
}

// FoldingRange is the bridge's intermediate shape for one folding range,
// independent of the exact LSP protocol struct.
type FoldingRange struct {
	StartLine      int
	StartCharacter *int
	EndLine        int
	EndCharacter   *int
	Kind           string // "comment" | "region" | "imports" | "" (none)
}

// BuildFoldingRange converts one analyzer outlining span into a
// FoldingRange. When lineFoldingOnly is true the client only understands
// whole-line folds: start/end characters are omitted, and if the fold's
// last character is one of foldEndPairCharacters the end line is pulled
// back by one (so the closing brace/bracket/paren/backtick itself stays
// visible outside the fold), per spec.md §4.8 and the analyzer's
// to_folding_range/adjust_folding_end_line behavior.
func BuildFoldingRange(span tsctypes.OutliningSpan, idx *lineindex.Index, text []byte, lineFoldingOnly bool) FoldingRange {
	start := idx.PositionOf(uint32(span.TextSpan.Start))
	end := idx.PositionOf(uint32(span.TextSpan.End()))

	out := FoldingRange{
		StartLine: int(start.Line),
		EndLine:   adjustFoldingEndLine(start, end, idx, text, lineFoldingOnly),
		Kind:      foldingRangeKind(span.Kind),
	}
	if !lineFoldingOnly {
		sc := int(start.Character)
		ec := int(end.Character)
		out.StartCharacter = &sc
		out.EndCharacter = &ec
	}
	return out
}

func adjustFoldingEndLine(start, end lineindex.Position, idx *lineindex.Index, text []byte, lineFoldingOnly bool) int {
	startLine, endLine := int(start.Line), int(end.Line)
	if lineFoldingOnly && endLine > 0 && end.Character > 0 {
		offsetEnd, _, err := idx.OffsetOfUTF16(end)
		if err == nil && offsetEnd > 0 && int(offsetEnd) <= len(text) {
			foldEndChar := text[offsetEnd-1]
			if foldEndPairCharacters[foldEndChar] {
				if endLine-1 > startLine {
					return endLine - 1
				}
				return startLine
			}
		}
	}
	return endLine
}

func foldingRangeKind(kind string) string {
	switch kind {
	case "comment", "region", "imports":
		return kind
	default:
		return ""
	}
}
