package translate

import (
	"tsbridge/internal/lineindex"
	"tsbridge/internal/tsctypes"
)

// Severity mirrors the LSP DiagnosticSeverity enum (1 Error .. 4 Hint),
// kept here rather than imported from glsp/protocol_3_16 so this package
// has no dependency on the wire protocol, matching the rest of translate.
type Severity int

const (
	SeverityError       Severity = 1
	SeverityWarning     Severity = 2
	SeverityInformation Severity = 3
	SeverityHint        Severity = 4
)

// DiagnosticTag mirrors LSP's DiagnosticTag enum.
type DiagnosticTag int

const (
	TagUnnecessary DiagnosticTag = 1
	TagDeprecated  DiagnosticTag = 2
)

// RelatedDiagnosticInformation is one entry of a diagnostic's
// relatedInformation list, pointing at a span in (possibly) another file.
type RelatedDiagnosticInformation struct {
	Specifier string
	Start     lineindex.Position
	End       lineindex.Position
	Message   string
}

// Diagnostic is the bridge's intermediate shape for one editor-facing
// diagnostic, independent of the exact LSP protocol struct.
type Diagnostic struct {
	Start    lineindex.Position
	End      lineindex.Position
	Severity Severity
	Code     int
	Source   string
	Message  string
	Tags     []DiagnosticTag
	Related  []RelatedDiagnosticInformation
}

func severityOf(category string) Severity {
	switch category {
	case "error":
		return SeverityError
	case "warning":
		return SeverityWarning
	case "suggestion":
		return SeverityInformation
	default:
		return SeverityHint
	}
}

// RelatedIndexLookup resolves a specifier to the lineindex.Index needed to
// convert a related-information span into an editor position.
type RelatedIndexLookup func(specifier string) *lineindex.Index

// BuildDiagnostic translates one analyzer Diagnostic into the bridge's
// editor-facing shape (spec.md §4.8 "Diagnostics"). idx converts the
// diagnostic's own span (in its own file); relatedIndexOf resolves the
// (possibly different) file each relatedInformation entry's span lives
// in. source is the fixed diagnostic source string this bridge reports
// diagnostics under (e.g. "deno-ts").
func BuildDiagnostic(d tsctypes.Diagnostic, idx *lineindex.Index, relatedIndexOf RelatedIndexLookup, source string) Diagnostic {
	out := Diagnostic{
		Start:    idx.PositionOf(uint32(d.Start)),
		End:      idx.PositionOf(uint32(d.Start + d.Length)),
		Severity: severityOf(d.Category),
		Code:     d.Code,
		Source:   source,
		Message:  d.MessageText,
	}
	if d.ReportsUnnecessary {
		out.Tags = append(out.Tags, TagUnnecessary)
	}
	if d.ReportsDeprecated {
		out.Tags = append(out.Tags, TagDeprecated)
	}
	for _, rel := range d.RelatedInformation {
		relIdx := idx
		if relatedIndexOf != nil {
			if other := relatedIndexOf(rel.File); other != nil {
				relIdx = other
			}
		}
		out.Related = append(out.Related, RelatedDiagnosticInformation{
			Specifier: rel.File,
			Start:     relIdx.PositionOf(uint32(rel.Start)),
			End:       relIdx.PositionOf(uint32(rel.Start + rel.Length)),
			Message:   rel.MessageText,
		})
	}
	return out
}

// BuildDiagnostics translates a whole analyzer diagnostic list for one
// file.
func BuildDiagnostics(diags []tsctypes.Diagnostic, idx *lineindex.Index, relatedIndexOf RelatedIndexLookup, source string) []Diagnostic {
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, BuildDiagnostic(d, idx, relatedIndexOf, source))
	}
	return out
}
