package translate

import (
	"path"
	"strings"

	"tsbridge/internal/lineindex"
	"tsbridge/internal/tsctypes"
)

// CallHierarchyItem is the bridge's intermediate shape for one call
// hierarchy node.
type CallHierarchyItem struct {
	Name           string
	Detail         string
	Kind           tsctypes.ScriptElementKind
	Specifier      string
	Range          lineindex.Position
	RangeEnd       lineindex.Position
	SelectionRange lineindex.Position
	SelectionEnd   lineindex.Position
	Deprecated     bool
}

// isSourceFileItem reports whether an item represents a whole file
// (rather than a symbol within one) and should be displayed using the
// file's own name/directory instead of its analyzer-reported name,
// per spec.md §4.8 "Call hierarchy" (ported from the analyzer's
// is_source_file_item, including its operator precedence: "script kind,
// OR module kind with a selection span starting at offset 0").
func isSourceFileItem(item tsctypes.CallHierarchyItem) bool {
	return item.Kind == tsctypes.ElementScript ||
		(item.Kind == tsctypes.ElementModule && item.SelectionSpan.Start == 0)
}

// hasDeprecatedModifier reports whether a comma-separated kindModifiers
// string contains "deprecated".
func hasDeprecatedModifier(kindModifiers string) bool {
	for _, m := range strings.Split(kindModifiers, ",") {
		if m == "deprecated" {
			return true
		}
	}
	return false
}

// BuildCallHierarchyItem translates one analyzer CallHierarchyItem using
// idx to convert the item's own file's byte spans into editor positions.
// For whole-file items (isSourceFileItem) the displayed name is the
// specifier's final path segment and the detail is its parent directory,
// matching the analyzer's file-name fallback; otherwise name/detail come
// straight from the item's own name/containerName.
func BuildCallHierarchyItem(item tsctypes.CallHierarchyItem, idx *lineindex.Index) CallHierarchyItem {
	name := item.Name
	detail := item.ContainerName
	if isSourceFileItem(item) {
		name = path.Base(item.File)
		detail = item.File
		if i := strings.LastIndex(item.File, "/"); i >= 0 {
			detail = item.File[:i]
		}
	}

	return CallHierarchyItem{
		Name:           name,
		Detail:         detail,
		Kind:           item.Kind,
		Specifier:      item.File,
		Range:          idx.PositionOf(uint32(item.Span.Start)),
		RangeEnd:       idx.PositionOf(uint32(item.Span.End())),
		SelectionRange: idx.PositionOf(uint32(item.SelectionSpan.Start)),
		SelectionEnd:   idx.PositionOf(uint32(item.SelectionSpan.End())),
		Deprecated:     hasDeprecatedModifier(item.KindModifiers),
	}
}

// CallHierarchyIncomingCall is the bridge's intermediate shape for one
// incoming call edge.
type CallHierarchyIncomingCall struct {
	From       CallHierarchyItem
	FromRanges []lineindex.Position
}

// BuildIncomingCall translates an analyzer CallHierarchyIncomingCall,
// converting both the caller item's own spans (via idx, the caller
// file's line index) and each call-site span (via the same index, since
// a caller's call sites necessarily live in the caller's own file).
func BuildIncomingCall(call tsctypes.CallHierarchyIncomingCall, idx *lineindex.Index) CallHierarchyIncomingCall {
	ranges := make([]lineindex.Position, 0, len(call.FromSpans))
	for _, span := range call.FromSpans {
		ranges = append(ranges, idx.PositionOf(uint32(span.Start)))
	}
	return CallHierarchyIncomingCall{
		From:       BuildCallHierarchyItem(call.From, idx),
		FromRanges: ranges,
	}
}

// CallHierarchyOutgoingCall is the bridge's intermediate shape for one
// outgoing call edge.
type CallHierarchyOutgoingCall struct {
	To         CallHierarchyItem
	FromRanges []lineindex.Position
}

// BuildOutgoingCall translates an analyzer CallHierarchyOutgoingCall.
// calleeIdx converts the callee item's own spans; callerIdx converts the
// call-site spans, which live in the caller's file, not the callee's.
func BuildOutgoingCall(call tsctypes.CallHierarchyOutgoingCall, calleeIdx, callerIdx *lineindex.Index) CallHierarchyOutgoingCall {
	ranges := make([]lineindex.Position, 0, len(call.ToSpans))
	for _, span := range call.ToSpans {
		ranges = append(ranges, callerIdx.PositionOf(uint32(span.Start)))
	}
	return CallHierarchyOutgoingCall{
		To:         BuildCallHierarchyItem(call.To, calleeIdx),
		FromRanges: ranges,
	}
}
