// Package tsctypes is the wire data model the analyzer exchanges with the
// bridge: the raw JSON shapes backing quick info, completions, navigation
// trees, outlining spans, classifications, call hierarchy, rename, and
// refactor/code-fix responses. These are intentionally close to the
// analyzer's own vocabulary (ScriptElementKind, TextSpan, NavigationTree,
// ...) since the translate package's job is converting *from* exactly
// this shape into editor-protocol types.
package tsctypes

// ScriptElementKind mirrors the analyzer's flat string enum for symbol
// kinds (e.g. "class", "interface", "method", "getAccessor").
type ScriptElementKind string

const (
	ElementUnknown      ScriptElementKind = ""
	ElementClass        ScriptElementKind = "class"
	ElementInterface    ScriptElementKind = "interface"
	ElementModule       ScriptElementKind = "module"
	ElementScript       ScriptElementKind = "script"
	ElementFunction     ScriptElementKind = "function"
	ElementMethod       ScriptElementKind = "method"
	ElementGetAccessor  ScriptElementKind = "getAccessor"
	ElementSetAccessor  ScriptElementKind = "setAccessor"
	ElementVariable     ScriptElementKind = "var"
	ElementEnum         ScriptElementKind = "enum"
	ElementAlias        ScriptElementKind = "alias"
	ElementWarning      ScriptElementKind = "warning"
)

// TextSpan is the analyzer's byte-offset span (spec.md §3 "Text Span").
type TextSpan struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// End returns the exclusive end offset of the span.
func (s TextSpan) End() int { return s.Start + s.Length }

// SymbolDisplayPart is one piece of a display string, tagged with the kind
// of thing it represents ("keyword", "className", "text", ...).
type SymbolDisplayPart struct {
	Text string `json:"text"`
	Kind string `json:"kind"`
}

// JSDocTagInfo is one `@tag` entry attached to a declaration.
type JSDocTagInfo struct {
	Name string              `json:"name"`
	Text []SymbolDisplayPart `json:"text"`
}

// QuickInfo is the analyzer's raw hover payload.
type QuickInfo struct {
	Kind              ScriptElementKind   `json:"kind"`
	KindModifiers     string              `json:"kindModifiers"`
	TextSpan          TextSpan            `json:"textSpan"`
	DisplayParts      []SymbolDisplayPart `json:"displayParts"`
	Documentation     []SymbolDisplayPart `json:"documentation"`
	Tags              []JSDocTagInfo      `json:"tags"`
}

// CompletionEntry is one item in a completion list.
type CompletionEntry struct {
	Name               string   `json:"name"`
	Kind               ScriptElementKind `json:"kind"`
	KindModifiers      string   `json:"kindModifiers"`
	SortText           string   `json:"sortText"`
	InsertText         string   `json:"insertText"`
	FilterText          string  `json:"filterText"`
	Source             string   `json:"source"`
	IsRecommended      bool     `json:"isRecommended"`
	IsSnippet          bool     `json:"isSnippet"`
	HasAction          bool     `json:"hasAction"`
	IsPackageJSONImport bool    `json:"isPackageJsonImport"`
	IsImportStatementCompletion bool `json:"isImportStatementCompletion"`
	Data               interface{} `json:"data"`
	ReplacementSpan    *TextSpan `json:"replacementSpan"`
	IsNewIdentifierLocation bool `json:"isNewIdentifierLocation"`
}

// CompletionInfo is the whole analyzer completion response.
type CompletionInfo struct {
	IsGlobalCompletion bool              `json:"isGlobalCompletion"`
	IsIncomplete       bool              `json:"isIncomplete"`
	IsMemberCompletion bool              `json:"isMemberCompletion"`
	Entries            []CompletionEntry `json:"entries"`
}

// CompletionEntryDetails is the richer per-entry resolve payload.
type CompletionEntryDetails struct {
	Name          string              `json:"name"`
	Kind          ScriptElementKind   `json:"kind"`
	KindModifiers string              `json:"kindModifiers"`
	DisplayParts  []SymbolDisplayPart `json:"displayParts"`
	Documentation []SymbolDisplayPart `json:"documentation"`
	Tags          []JSDocTagInfo      `json:"tags"`
	CodeActions   []CodeAction        `json:"codeActions"`
	Source        []SymbolDisplayPart `json:"source"`
}

// FileTextChange is one textual edit within one file.
type FileTextChange struct {
	FileName string     `json:"fileName"`
	TextChanges []TextChange `json:"textChanges"`
}

// TextChange is a single span replacement.
type TextChange struct {
	Span    TextSpan `json:"span"`
	NewText string   `json:"newText"`
}

// CodeAction is the analyzer's generic "apply this set of file changes"
// shape, shared by code fixes and completion-detail additional edits.
type CodeAction struct {
	Description string           `json:"description"`
	Changes     []FileTextChange `json:"changes"`
}

// CodeFixAction extends CodeAction with the fix-id machinery for combined
// fixes ("fix all in file").
type CodeFixAction struct {
	CodeAction
	FixName        string      `json:"fixName"`
	FixID          interface{} `json:"fixId"`
	FixAllDescription string   `json:"fixAllDescription"`
}

// CombinedCodeActions is the result of applying a fix-id across a file.
type CombinedCodeActions struct {
	Changes []FileTextChange `json:"changes"`
}

// NavigationTree is the analyzer's recursive outline of a source file.
type NavigationTree struct {
	Text          string            `json:"text"`
	Kind          ScriptElementKind `json:"kind"`
	KindModifiers string            `json:"kindModifiers"`
	Spans         []TextSpan        `json:"spans"`
	NameSpan      *TextSpan         `json:"nameSpan"`
	ChildItems    []NavigationTree  `json:"childItems"`
}

// OutliningSpan is one foldable region.
type OutliningSpan struct {
	TextSpan      TextSpan `json:"textSpan"`
	HintSpan      TextSpan `json:"hintSpan"`
	BannerText    string   `json:"bannerText"`
	AutoCollapse  bool     `json:"autoCollapse"`
	Kind          string   `json:"kind"` // "comment" | "region" | "imports" | "code"
}

// ClassifiedSpan is the decoded form of one [offset, length, classification]
// triple the analyzer returns as a flat stream for semantic tokens.
type ClassifiedSpan struct {
	Start          int
	Length         int
	Classification int
}

// ApplicableRefactorInfo is one refactor "family" (e.g. "Extract Symbol")
// with its available actions.
type ApplicableRefactorInfo struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Actions     []RefactorActionInfo `json:"actions"`
}

// RefactorActionInfo is one concrete refactor action within a family.
type RefactorActionInfo struct {
	Name                string `json:"name"`
	Description         string `json:"description"`
	NotApplicableReason string `json:"notApplicableReason"`
	Kind                string `json:"kind"`
}

// RefactorEditInfo is the result of applying one refactor action.
type RefactorEditInfo struct {
	Edits              []FileTextChange `json:"edits"`
	RenameFilename     string           `json:"renameFilename"`
	RenameLocation     int              `json:"renameLocation"`
}

// DocumentSpan is a span within a file, optionally with origin context.
type DocumentSpan struct {
	FileName           string   `json:"fileName"`
	TextSpan           TextSpan `json:"textSpan"`
	OriginalFileName    string  `json:"originalFileName"`
	OriginalTextSpan    *TextSpan `json:"originalTextSpan"`
	ContextSpan        *TextSpan `json:"contextSpan"`
}

// RenameLocation is one location the analyzer proposes editing for a
// rename.
type RenameLocation struct {
	DocumentSpan
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`
}

// CallHierarchyItem mirrors the analyzer's call-hierarchy node shape.
type CallHierarchyItem struct {
	Name             string            `json:"name"`
	Kind             ScriptElementKind `json:"kind"`
	KindModifiers    string            `json:"kindModifiers"`
	File             string            `json:"file"`
	ContainerName    string            `json:"containerName"`
	Span             TextSpan          `json:"span"`
	SelectionSpan    TextSpan          `json:"selectionSpan"`
}

// CallHierarchyIncomingCall pairs a caller item with the spans of the
// calls it makes into the target.
type CallHierarchyIncomingCall struct {
	From       CallHierarchyItem `json:"from"`
	FromSpans  []TextSpan        `json:"fromSpans"`
}

// CallHierarchyOutgoingCall pairs a callee item with the spans of the
// calls the source makes into it.
type CallHierarchyOutgoingCall struct {
	To       CallHierarchyItem `json:"to"`
	ToSpans  []TextSpan        `json:"fromSpans"`
}

// InlayHintKind distinguishes parameter-name hints from type hints. LSP
// 3.16 (the protocol version this bridge's glsp dependency implements)
// has no inlay-hint type at all — InlayHint is ported here directly from
// the analyzer's own shape rather than sourced from glsp.
type InlayHintKind int

const (
	InlayHintKindType InlayHintKind = iota + 1
	InlayHintKindParameter
	InlayHintKindEnumMember
)

// InlayHint is one inline annotation the analyzer wants rendered at a
// position.
type InlayHint struct {
	Text           string        `json:"text"`
	Position       int           `json:"position"`
	Kind           InlayHintKind `json:"kind"`
	WhitespaceBefore bool        `json:"whitespaceBefore"`
	WhitespaceAfter  bool        `json:"whitespaceAfter"`
}

// Diagnostic is one analyzer-reported diagnostic.
type Diagnostic struct {
	File                string       `json:"file"`
	Start               int          `json:"start"`
	Length              int          `json:"length"`
	MessageText         string       `json:"messageText"`
	Category            string       `json:"category"` // "error" | "warning" | "suggestion" | "message"
	Code                int          `json:"code"`
	ReportsUnnecessary  bool         `json:"reportsUnnecessary"`
	ReportsDeprecated   bool         `json:"reportsDeprecated"`
	RelatedInformation  []Diagnostic `json:"relatedInformation"`
}

// NavigateToItem is one match from a workspace-wide symbol search.
type NavigateToItem struct {
	Name           string          `json:"name"`
	Kind           ScriptElementKind `json:"kind"`
	MatchKind      string          `json:"matchKind"`
	FileName       string          `json:"fileName"`
	TextSpan       TextSpan        `json:"textSpan"`
	ContainerName  string          `json:"containerName"`
	ContainerKind  ScriptElementKind `json:"containerKind"`
}

// SelectionRange is one node of the selection-range tree: the span itself
// plus, recursively, the next-larger enclosing span.
type SelectionRange struct {
	TextSpan TextSpan        `json:"textSpan"`
	Parent   *SelectionRange `json:"parent"`
}

// SignatureHelpParameter is one parameter of a SignatureHelpItem.
type SignatureHelpParameter struct {
	Name             string              `json:"name"`
	IsOptional       bool                `json:"isOptional"`
	DisplayParts     []SymbolDisplayPart `json:"displayParts"`
	Documentation    []SymbolDisplayPart `json:"documentation"`
}

// SignatureHelpItem is one overload candidate.
type SignatureHelpItem struct {
	IsVariadic       bool                     `json:"isVariadic"`
	PrefixDisplayParts []SymbolDisplayPart    `json:"prefixDisplayParts"`
	SuffixDisplayParts []SymbolDisplayPart    `json:"suffixDisplayParts"`
	SeparatorDisplayParts []SymbolDisplayPart `json:"separatorDisplayParts"`
	Parameters       []SignatureHelpParameter `json:"parameters"`
	Documentation    []SymbolDisplayPart      `json:"documentation"`
}

// SignatureHelpItems is the analyzer's full signature-help response:
// every overload candidate plus which one is active and which parameter
// the cursor sits in.
type SignatureHelpItems struct {
	Items                []SignatureHelpItem `json:"items"`
	ApplicableSpan       TextSpan            `json:"applicableSpan"`
	SelectedItemIndex    int                 `json:"selectedItemIndex"`
	ArgumentIndex        int                 `json:"argumentIndex"`
}

// EncodedSemanticClassifications is GetEncodedSemanticClassifications'
// packed [offset, length, classification, ...] response, decoded by
// translate.DecodeSemanticClassifications.
type EncodedSemanticClassifications struct {
	Spans []int `json:"spans"`
}
