package translate

import (
	"tsbridge/internal/lineindex"
	"tsbridge/internal/tsctypes"
)

// Location is the bridge's intermediate shape for one file+range result,
// shared by FindReferences, GetDefinition, GetTypeDefinition,
// GetImplementation and GetDocumentHighlights (spec.md §4.8), all of
// which resolve to a DocumentSpan on the analyzer side.
type Location struct {
	Specifier string
	Start     lineindex.Position
	End       lineindex.Position
}

// BuildLocation translates one analyzer DocumentSpan into a Location
// using idx, the span's own file's line index.
func BuildLocation(span tsctypes.DocumentSpan, idx *lineindex.Index) Location {
	return Location{
		Specifier: span.FileName,
		Start:     idx.PositionOf(uint32(span.TextSpan.Start)),
		End:       idx.PositionOf(uint32(span.TextSpan.End())),
	}
}

// BuildLocations translates a list of DocumentSpans, each potentially
// living in a different file, using indexOf to resolve each one's line
// index.
func BuildLocations(spans []tsctypes.DocumentSpan, indexOf LineIndexLookup) []Location {
	out := make([]Location, 0, len(spans))
	for _, span := range spans {
		out = append(out, BuildLocation(span, indexOf(span.FileName)))
	}
	return out
}

// RenameLocationsToLocations reuses the same span shape for callers that
// only need FindRenameLocations' source spans (not the rename edits
// BuildRenameEdits produces), e.g. for a "show me what would rename"
// preview.
func RenameLocationsToLocations(locations []tsctypes.RenameLocation, indexOf LineIndexLookup) []Location {
	out := make([]Location, 0, len(locations))
	for _, loc := range locations {
		out = append(out, BuildLocation(loc.DocumentSpan, indexOf(loc.FileName)))
	}
	return out
}
