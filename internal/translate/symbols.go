package translate

import "tsbridge/internal/tsctypes"

// DocumentSymbol is the bridge's intermediate shape for one entry in a
// document's outline, independent of the exact glsp protocol struct.
type DocumentSymbol struct {
	Name           string
	Detail         string
	Range          tsctypes.TextSpan
	SelectionRange tsctypes.TextSpan
	Children       []DocumentSymbol
}

// accessorPrefix returns the "(get) "/"(set) " prefix for accessor kinds,
// or "" otherwise (spec.md §4.8 "Accessor kinds are prefixed (get) /
// (set) ").
func accessorPrefix(kind tsctypes.ScriptElementKind) string {
	switch kind {
	case tsctypes.ElementGetAccessor:
		return "(get) "
	case tsctypes.ElementSetAccessor:
		return "(set) "
	default:
		return ""
	}
}

// includeNavItem reports whether a navigation-tree node should become a
// DocumentSymbol, per spec.md §4.8: "included iff its kind is not alias,
// its text is non-empty, and text != <function>/<class>."
func includeNavItem(item tsctypes.NavigationTree) bool {
	if item.Kind == tsctypes.ElementAlias {
		return false
	}
	if item.Text == "" || item.Text == "<function>" || item.Text == "<class>" {
		return false
	}
	return true
}

func spansIntersect(a, b tsctypes.TextSpan) bool {
	return a.Start < b.End() && b.Start < a.End()
}

func withinSpan(inner, outer tsctypes.TextSpan) bool {
	return inner.Start >= outer.Start && inner.End() <= outer.End()
}

func primarySpan(item tsctypes.NavigationTree) tsctypes.TextSpan {
	if len(item.Spans) > 0 {
		return item.Spans[0]
	}
	return tsctypes.TextSpan{}
}

// BuildDocumentSymbols recursively walks an analyzer navigation tree into
// DocumentSymbols (spec.md §4.8 "Document symbols"). The tree's own root
// node represents the file itself and is not emitted as a symbol; its
// children (filtered by includeNavItem) become the top-level result.
// Recursion is a plain recursive walk per spec.md §9's guidance that
// these trees, while possibly deep, are acyclic and safe to recurse over
// directly.
func BuildDocumentSymbols(root tsctypes.NavigationTree) []DocumentSymbol {
	return buildChildren(root.ChildItems, primarySpan(root))
}

// buildChildren converts every includable child of a node into a
// DocumentSymbol. parentSpan is the enclosing node's primary span;
// children are attached only when their own span intersects it (spec.md
// §4.8 "Children are attached only from nav-items whose spans intersect
// the parent range"), except when parentSpan is the zero value (the file
// root has no meaningful span to intersect against).
func buildChildren(items []tsctypes.NavigationTree, parentSpan tsctypes.TextSpan) []DocumentSymbol {
	var out []DocumentSymbol
	for _, item := range items {
		if !includeNavItem(item) {
			continue
		}
		span := primarySpan(item)
		if parentSpan != (tsctypes.TextSpan{}) && !spansIntersect(span, parentSpan) {
			continue
		}

		selection := span
		if item.NameSpan != nil && withinSpan(*item.NameSpan, span) {
			selection = *item.NameSpan
		}

		out = append(out, DocumentSymbol{
			Name:           accessorPrefix(item.Kind) + item.Text,
			Detail:         string(item.Kind),
			Range:          span,
			SelectionRange: selection,
			Children:       buildChildren(item.ChildItems, span),
		})
	}
	return out
}
