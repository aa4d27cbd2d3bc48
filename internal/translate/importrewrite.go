package translate

import (
	"path"
	"strings"
)

// ImportMapper is the caller-supplied collaborator that knows about import
// maps and remote URL canonicalization (spec.md §4.8 "Import statement
// rewriting"). CheckSpecifier returns the mapped specifier and true if the
// mapper has an opinion; otherwise ok is false and the caller falls back
// to a computed relative specifier.
type ImportMapper interface {
	CheckSpecifier(target, referrer string) (mapped string, ok bool)
}

// ImportEdit is the minimal shape importrewrite needs out of an
// analyzer-proposed auto-import text edit.
type ImportEdit struct {
	NewText string
}

// RewriteImportStatement substitutes the module specifier an auto-import
// text edit names for either the caller-supplied mapper's answer or a
// relative specifier computed from referrer to target, per spec.md §4.8:
// "first try a caller-supplied mapper ... else compute a relative
// specifier from the current document to the import target." The edit's
// NewText is a textual replace of the analyzer's moduleSpecifier text with
// the chosen one. If neither path produces a specifier, the edit is
// returned unchanged.
func RewriteImportStatement(edit ImportEdit, moduleSpecifier, target, referrer string, mapper ImportMapper) ImportEdit {
	var newSpecifier string
	if mapper != nil {
		if mapped, ok := mapper.CheckSpecifier(target, referrer); ok {
			newSpecifier = mapped
		}
	}
	if newSpecifier == "" {
		newSpecifier = RelativeSpecifier(referrer, target)
	}
	if newSpecifier == "" {
		return edit
	}
	edit.NewText = strings.ReplaceAll(edit.NewText, moduleSpecifier, newSpecifier)
	return edit
}

// RelativeSpecifier computes a relative module specifier from referrer to
// target, both absolute file:/// (or other scheme) URIs, preserving
// target's file extension (spec.md S5 fixtures: "./b" -> "./b.ts", "../b/b"
// -> "../b/b.ts").
func RelativeSpecifier(referrer, target string) string {
	refScheme, refPath := splitScheme(referrer)
	tgtScheme, tgtPath := splitScheme(target)
	if refScheme != tgtScheme {
		return ""
	}

	refDir := path.Dir(refPath)
	rel, err := relPath(refDir, tgtPath)
	if err != nil {
		return ""
	}
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return rel
}

func splitScheme(specifier string) (scheme, rest string) {
	if i := strings.Index(specifier, "://"); i >= 0 {
		return specifier[:i], specifier[i+3:]
	}
	return "", specifier
}

// relPath computes a slash-separated relative path from base to target,
// both absolute, slash-separated paths (no ".." resolution needed on
// either side beyond what path.Dir/path.Join already normalize).
func relPath(base, target string) (string, error) {
	baseParts := strings.Split(strings.Trim(base, "/"), "/")
	targetParts := strings.Split(strings.Trim(target, "/"), "/")

	common := 0
	for common < len(baseParts)-0 && common < len(targetParts)-1 &&
		baseParts[common] == targetParts[common] {
		common++
	}

	ups := len(baseParts) - common
	var parts []string
	for i := 0; i < ups; i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, targetParts[common:]...)
	return strings.Join(parts, "/"), nil
}
