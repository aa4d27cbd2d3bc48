// Package translate converts raw analyzer JSON (tsctypes) into
// editor-protocol objects (spec.md §4.8 Response Translators): hover,
// completions, semantic tokens, document symbols, folding ranges, rename,
// refactors, call hierarchy, and JSDoc link/markdown rendering.
package translate

import (
	"regexp"
	"strconv"
	"strings"
)

// jsdocLinksRE matches `{@link target [text]}`, `{@linkplain target
// [text]}`, and `{@linkcode target [text]}` where target is an absolute
// http(s) URL, mirroring the analyzer's own JSDoc-link tag grammar.
var jsdocLinksRE = regexp.MustCompile(`(?i)\{@(link|linkplain|linkcode) (https?://[^ |}]+?)(?:[| ]([^{}\n]+?))?\}`)

// ReplaceLinks rewrites every `{@link ...}`/`{@linkplain ...}`/
// `{@linkcode ...}` tag whose target is an absolute http(s) URL into a
// markdown link (spec.md §4.8.1). `{@linkcode}` wraps the link text in a
// code span. Targets that are not absolute http(s) URLs (symbol
// references) are left untouched here; those are handled by the
// resolvable-document-span path in RenderDocLink, which callers use when
// they have a specifier resolver available.
//
// Applying ReplaceLinks twice is a no-op on its own output (spec.md P7):
// the rewritten form is `[text](url)` or `` [`text`](url) ``, neither of
// which matches jsdocLinksRE, so a second pass leaves it unchanged.
func ReplaceLinks(text string) string {
	return jsdocLinksRE.ReplaceAllStringFunc(text, func(match string) string {
		groups := jsdocLinksRE.FindStringSubmatch(match)
		tag, target, label := groups[1], groups[2], groups[3]

		display := target
		if label != "" {
			display = strings.TrimSpace(label)
		}

		if strings.EqualFold(tag, "linkcode") {
			return "[`" + escapeBackticks(display) + "`](" + target + ")"
		}
		return "[" + display + "](" + target + ")"
	})
}

func escapeBackticks(s string) string {
	return strings.ReplaceAll(s, "`", "\\`")
}

// DocLinkResolver resolves a symbol name referenced by `{@link Name}` (no
// URL) to a document span the editor can jump to, when one is known.
type DocLinkResolver interface {
	// Resolve returns (uri, line, column, ok). line/column are 1-based, per
	// spec.md §4.8.1 "translate span to a URI with a L<line>,<col>
	// fragment (1-based)".
	Resolve(symbol string) (uri string, line, column int, ok bool)
}

// symbolLinkRE matches a bare `{@link Symbol [text]}` where Symbol is not
// an absolute URL (anything jsdocLinksRE would already have claimed is
// excluded by running this pass second).
var symbolLinkRE = regexp.MustCompile(`\{@(link|linkplain|linkcode) ([^\s{}]+)(?:[| ]([^{}\n]+?))?\}`)

// RenderDocLinks is ReplaceLinks' companion for symbol-target links: it
// runs after ReplaceLinks has already claimed every absolute-URL link, so
// only symbol references remain. When resolver finds a span for the
// symbol it emits a `name#L<line>,<col>` markdown link; otherwise the
// original text (or label) is emitted verbatim, per spec.md §4.8.1 "If
// target is a symbol with a resolvable document span ... Otherwise emit
// the text verbatim."
func RenderDocLinks(text string, resolver DocLinkResolver) string {
	text = ReplaceLinks(text)
	if resolver == nil {
		return text
	}
	return symbolLinkRE.ReplaceAllStringFunc(text, func(match string) string {
		groups := symbolLinkRE.FindStringSubmatch(match)
		tag, target, label := groups[1], groups[2], groups[3]

		display := target
		if label != "" {
			display = strings.TrimSpace(label)
		}
		display = escapeBackticks(display)

		uri, line, col, ok := resolver.Resolve(target)
		if !ok {
			if strings.EqualFold(tag, "linkcode") {
				return "`" + display + "`"
			}
			return display
		}
		link := uri + "#L" + strconv.Itoa(line) + "," + strconv.Itoa(col)
		if strings.EqualFold(tag, "linkcode") {
			return "[`" + display + "`](" + link + ")"
		}
		return "[" + display + "](" + link + ")"
	})
}
