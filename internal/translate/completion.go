package translate

import (
	"regexp"
	"strings"

	"tsbridge/internal/lineindex"
	"tsbridge/internal/tsctypes"
)

// bracketAccessorRE matches a bracket-accessor insert text like `['foo']`
// or `["foo"]`, capturing the bare property name.
var bracketAccessorRE = regexp.MustCompile(`^\[['"](.+)['"]\]$`)

// FilterText derives a completion entry's filter text per spec.md §4.8
// "insertText/filterText" rules (S4):
//   - names starting with "#": remapped from "this.#" stripped insert text,
//     or the raw insert text, or absent entirely if there is no insert text.
//   - bracket-accessor inserts ("['x']") are filtered as ".x".
//   - "this."-prefixed inserts have no filter text.
//   - otherwise, the filter text is the insert text itself (which may be
//     empty, meaning "use the name").
func FilterText(entry tsctypes.CompletionEntry) (string, bool) {
	if strings.HasPrefix(entry.Name, "#") {
		if entry.InsertText == "" {
			return "", false
		}
		if strings.HasPrefix(entry.InsertText, "this.#") {
			return strings.Replace(entry.InsertText, "this.#", "", 1), true
		}
		return entry.InsertText, true
	}

	if entry.InsertText == "" {
		return "", false
	}
	if strings.HasPrefix(entry.InsertText, "this.") {
		return "", false
	}
	if strings.HasPrefix(entry.InsertText, "[") {
		if m := bracketAccessorRE.FindStringSubmatch(entry.InsertText); m != nil {
			return "." + m[1], true
		}
	}
	return entry.InsertText, true
}

// SortText prefixes an entry's sort text with U+FFFF when the entry has a
// non-empty source, so auto-imports sort after locals (spec.md §4.8).
func SortText(entry tsctypes.CompletionEntry) string {
	if entry.Source != "" {
		return "￿" + entry.SortText
	}
	return entry.SortText
}

// accessorLikeKinds commit on "." and ";" only.
var accessorLikeKinds = map[tsctypes.ScriptElementKind]bool{
	tsctypes.ElementGetAccessor: true,
	tsctypes.ElementSetAccessor: true,
	tsctypes.ElementEnum:        true,
	tsctypes.ElementInterface:   true,
	"constructSignature":       true,
	"callSignature":            true,
	"indexSignature":           true,
}

// valueLikeKinds commit on ".", ",", ";" and, unless "complete function
// calls" is on, "(" too.
var valueLikeKinds = map[tsctypes.ScriptElementKind]bool{
	tsctypes.ElementModule:    true,
	tsctypes.ElementAlias:     true,
	"const":                   true,
	"let":                     true,
	tsctypes.ElementVariable:  true,
	"localVariable":           true,
	"memberVariable":          true,
	tsctypes.ElementClass:     true,
	tsctypes.ElementFunction:  true,
	tsctypes.ElementMethod:    true,
	"keyword":                 true,
	"parameter":               true,
}

// CommitCharacters returns the commit-character set for an entry, or nil
// if none apply (spec.md §4.8 "Commit characters"). isNewIdentifierLocation
// (the completion handler passes each entry's own isNewIdentifierLocation
// field) suppresses commit characters entirely.
func CommitCharacters(entry tsctypes.CompletionEntry, isNewIdentifierLocation, completeFunctionCalls bool) []string {
	if isNewIdentifierLocation {
		return nil
	}
	switch {
	case accessorLikeKinds[entry.Kind]:
		return []string{".", ";"}
	case valueLikeKinds[entry.Kind]:
		chars := []string{".", ",", ";"}
		if !completeFunctionCalls {
			chars = append(chars, "(")
		}
		return chars
	default:
		return nil
	}
}

// KindModifiers parses a comma/space-separated kind-modifiers string into
// a set, matching the analyzer's own modifier grammar.
func KindModifiers(kindModifiers string) map[string]bool {
	set := make(map[string]bool)
	for _, m := range regexp.MustCompile(`[,\s]+`).Split(kindModifiers, -1) {
		if m != "" {
			set[m] = true
		}
	}
	return set
}

// Item is the bridge's intermediate completion-item shape: enough to
// build an LSP CompletionItem, independent of the exact glsp struct
// layout so this package's tests don't need a full glsp roundtrip.
type Item struct {
	Label            string
	InsertText       string
	FilterText       string
	HasFilterText    bool
	SortText         string
	CommitCharacters []string
	Preselect        bool
	Deprecated       bool
	Detail           string
	Data             interface{}
	TextEdit         *TextEdit
}

// elementExtensions is the set of file-extension kind-modifiers the
// analyzer attaches to a script-element completion entry, longest (and
// thus most specific) first so ".d.ts" is matched before the ".ts" it
// would otherwise also satisfy.
var elementExtensions = []string{".d.ts", ".tsx", ".ts", ".jsx", ".js", ".json"}

// BuildCompletionItem applies every per-entry rule from spec.md §4.8 to
// one analyzer completion entry. idx resolves entry.ReplacementSpan (if
// any) into an editor TextEdit; it may be nil, in which case no TextEdit
// is produced.
func BuildCompletionItem(entry tsctypes.CompletionEntry, isNewIdentifierLocation, completeFunctionCalls bool, data interface{}, idx *lineindex.Index) Item {
	label := entry.Name
	filter, hasFilter := FilterText(entry)
	insert := entry.InsertText

	mods := KindModifiers(entry.KindModifiers)
	if mods["optional"] {
		if insert == "" {
			insert = label
		}
		if !hasFilter {
			filter, hasFilter = label, true
		}
		label += "?"
	}

	// For script-element kinds (e.g. a file-path completion), the
	// extension modifier actually present on this entry (not any suffix
	// the name happens to have) selects which extension to surface; the
	// name is shown as-is if it already ends with that extension, or with
	// the extension appended otherwise (ported from tsc.rs's detail
	// derivation, which reads kindModifiers rather than the name).
	detail := ""
	if entry.Kind == tsctypes.ElementScript {
		for _, ext := range elementExtensions {
			if !mods[ext] {
				continue
			}
			if strings.HasSuffix(entry.Name, ext) {
				detail = entry.Name
			} else {
				detail = entry.Name + ext
			}
			break
		}
	}

	var textEdit *TextEdit
	if entry.ReplacementSpan != nil && idx != nil {
		newText := insert
		if newText == "" {
			newText = label
		}
		textEdit = &TextEdit{
			Start:   idx.PositionOf(uint32(entry.ReplacementSpan.Start)),
			End:     idx.PositionOf(uint32(entry.ReplacementSpan.End())),
			NewText: newText,
		}
	}

	return Item{
		Label:            label,
		InsertText:       insert,
		FilterText:       filter,
		HasFilterText:    hasFilter,
		SortText:         SortText(entry),
		CommitCharacters: CommitCharacters(entry, isNewIdentifierLocation, completeFunctionCalls),
		Preselect:        entry.IsRecommended,
		Deprecated:       mods["deprecated"],
		Detail:           detail,
		Data:             data,
		TextEdit:         textEdit,
	}
}
