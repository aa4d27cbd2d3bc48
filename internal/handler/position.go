package handler

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tsbridge/internal/lineindex"
)

// lineindexPosition converts an LSP Position into the lineindex package's
// Position; the two share the same (Line, Character uint32) shape, the
// LSP wire format's UTF-16-code-unit convention.
func lineindexPosition(p protocol.Position) lineindex.Position {
	return lineindex.Position{Line: p.Line, Character: p.Character}
}

func protocolPosition(p lineindex.Position) protocol.Position {
	return protocol.Position{Line: p.Line, Character: p.Character}
}
