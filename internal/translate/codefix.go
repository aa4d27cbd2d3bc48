package translate

import "tsbridge/internal/tsctypes"

// FileEditGroup is one file's worth of text edits within a code action
// or combined fix, keyed by specifier so the caller can stamp each with
// that file's own script version before handing it to the editor.
type FileEditGroup struct {
	Specifier string
	Edits     []TextEdit
}

// CodeFix is the bridge's intermediate shape for one quick-fix code
// action (spec.md §4.8 "Code actions & refactors"), translated from the
// analyzer's CodeFixAction.
type CodeFix struct {
	Title             string
	FixName           string
	FixID             interface{}
	FixAllDescription string
	Edits             []FileEditGroup
}

// buildFileEditGroups converts the analyzer's per-file changes into
// FileEditGroups using indexOf to resolve each file's own lineindex.
func buildFileEditGroups(changes []tsctypes.FileTextChange, indexOf LineIndexLookup) []FileEditGroup {
	out := make([]FileEditGroup, 0, len(changes))
	for _, change := range changes {
		idx := indexOf(change.FileName)
		edits := make([]TextEdit, 0, len(change.TextChanges))
		for _, tc := range change.TextChanges {
			edits = append(edits, TextEdit{
				Start:   idx.PositionOf(uint32(tc.Span.Start)),
				End:     idx.PositionOf(uint32(tc.Span.End())),
				NewText: tc.NewText,
			})
		}
		out = append(out, FileEditGroup{Specifier: change.FileName, Edits: edits})
	}
	return out
}

// BuildCodeFix translates one analyzer CodeFixAction into a CodeFix.
func BuildCodeFix(action tsctypes.CodeFixAction, indexOf LineIndexLookup) CodeFix {
	return CodeFix{
		Title:             action.Description,
		FixName:           action.FixName,
		FixID:             action.FixID,
		FixAllDescription: action.FixAllDescription,
		Edits:             buildFileEditGroups(action.Changes, indexOf),
	}
}

// BuildCodeFixes translates a whole GetCodeFixes response.
func BuildCodeFixes(actions []tsctypes.CodeFixAction, indexOf LineIndexLookup) []CodeFix {
	out := make([]CodeFix, 0, len(actions))
	for _, a := range actions {
		out = append(out, BuildCodeFix(a, indexOf))
	}
	return out
}

// BuildCombinedCodeFix translates a GetCombinedCodeFix response (a
// "fix all in file" application of one fixId) into the same FileEditGroup
// shape as a single CodeFix's edits.
func BuildCombinedCodeFix(combined tsctypes.CombinedCodeActions, indexOf LineIndexLookup) []FileEditGroup {
	return buildFileEditGroups(combined.Changes, indexOf)
}
