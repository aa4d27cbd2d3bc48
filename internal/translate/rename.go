package translate

import "tsbridge/internal/lineindex"

// TextEdit is one replacement within a single file.
type TextEdit struct {
	Start   lineindex.Position
	End     lineindex.Position
	NewText string
}

// FileEdit groups every TextEdit targeting one specifier, stamped with
// the script version the edits were computed against (spec.md §4.8
// "Rename": "edits are grouped per file and stamped with that file's
// current script version, so a stale apply can be detected client-side").
type FileEdit struct {
	Specifier string
	Version   string
	Edits     []TextEdit
}

// RenameLocation is the minimal shape BuildRenameEdits needs out of an
// analyzer-proposed rename location.
type RenameLocation struct {
	Specifier string
	Start     int
	Length    int
}

// LineIndexLookup resolves a specifier to the lineindex.Index needed to
// convert its byte-offset spans into editor positions.
type LineIndexLookup func(specifier string) *lineindex.Index

// ScriptVersionLookup resolves a specifier to its current script version.
type ScriptVersionLookup func(specifier string) string

// BuildRenameEdits accumulates one FileEdit per distinct specifier named
// across locations, in first-seen order, each carrying every TextEdit for
// that file (spec.md §4.8 "Rename": ported from the analyzer's
// into_workspace_edit, which folds RenameLocations into one
// TextDocumentEdit per target URI, appending to an existing entry rather
// than creating a duplicate).
func BuildRenameEdits(locations []RenameLocation, newName string, indexOf LineIndexLookup, versionOf ScriptVersionLookup) []FileEdit {
	order := make([]string, 0)
	bySpecifier := make(map[string]*FileEdit)

	for _, loc := range locations {
		fe, ok := bySpecifier[loc.Specifier]
		if !ok {
			fe = &FileEdit{Specifier: loc.Specifier, Version: versionOf(loc.Specifier)}
			bySpecifier[loc.Specifier] = fe
			order = append(order, loc.Specifier)
		}

		idx := indexOf(loc.Specifier)
		fe.Edits = append(fe.Edits, TextEdit{
			Start:   idx.PositionOf(uint32(loc.Start)),
			End:     idx.PositionOf(uint32(loc.Start + loc.Length)),
			NewText: newName,
		})
	}

	out := make([]FileEdit, 0, len(order))
	for _, specifier := range order {
		out = append(out, *bySpecifier[specifier])
	}
	return out
}
