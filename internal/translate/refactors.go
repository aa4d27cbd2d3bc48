package translate

import (
	"regexp"
	"strconv"
	"strings"

	"tsbridge/internal/tsctypes"
)

var scopeRE = regexp.MustCompile(`scope_(\d+)`)

// refactorActionKinds maps well-known analyzer refactor-action name
// substrings to an editor-facing code action kind, used when the
// analyzer didn't supply its own kind string (spec.md §4.8 "Refactors";
// the analyzer's own ALL_KNOWN_REFACTOR_ACTION_KINDS table is not part of
// this bridge's retrieval pack, so this is a best-effort reconstruction
// from the family names the analyzer's refactor actions are documented to
// use).
var refactorActionKinds = []struct {
	match string
	kind  string
}{
	{"extract constant", "refactor.extract.constant"},
	{"extract type", "refactor.extract.type"},
	{"extract interface", "refactor.extract.interface"},
	{"extract function", "refactor.extract.function"},
	{"extract", "refactor.extract"},
	{"move to a new file", "refactor.move.newFile"},
	{"convert", "refactor.rewrite"},
	{"inline", "refactor.inline"},
}

func isExtractConstant(name string) bool {
	return strings.Contains(strings.ToLower(name), "extract constant")
}

func isExtractType(name string) bool {
	return strings.Contains(strings.ToLower(name), "extract type")
}

func isExtractInterface(name string) bool {
	return strings.Contains(strings.ToLower(name), "extract interface")
}

// ActionKind returns the CodeActionKind string for a refactor action:
// the analyzer's own kind when present, else the best match from
// refactorActionKinds, else the generic "refactor" kind.
func ActionKind(action tsctypes.RefactorActionInfo) string {
	if action.Kind != "" {
		return action.Kind
	}
	lower := strings.ToLower(action.Name)
	for _, k := range refactorActionKinds {
		if strings.Contains(lower, k.match) {
			return k.kind
		}
	}
	return "refactor"
}

func scopeOf(name string) (int, bool) {
	m := scopeRE.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsPreferred reports whether action should be marked isPreferred among
// its sibling actions within the same ApplicableRefactorInfo, per
// spec.md §4.8 and the analyzer's RefactorActionInfo::is_preferred:
// "Extract Constant" actions are preferred only when their numeric scope
// is strictly smaller than every sibling Extract Constant action's scope
// (picking the innermost-scoped extraction as the default); "Extract
// Type"/"Extract Interface" actions are always preferred; everything
// else is never preferred.
func IsPreferred(action tsctypes.RefactorActionInfo, siblings []tsctypes.RefactorActionInfo) bool {
	if isExtractConstant(action.Name) {
		scope, ok := scopeOf(action.Name)
		if !ok {
			return false
		}
		for _, other := range siblings {
			if other.Name == action.Name || !isExtractConstant(other.Name) {
				continue
			}
			if otherScope, ok := scopeOf(other.Name); ok && scope >= otherScope {
				return false
			}
		}
		return true
	}
	return isExtractType(action.Name) || isExtractInterface(action.Name)
}

// RefactorCodeAction is the bridge's intermediate shape for one
// refactor-derived code action.
type RefactorCodeAction struct {
	Title                string
	Kind                 string
	IsPreferred          bool
	Disabled             bool
	DisabledReason       string
	RefactorName         string
	ActionName           string
}

// BuildRefactorCodeActions expands one ApplicableRefactorInfo into one
// code action per action (spec.md §4.8: "all analyzer refactor actions
// are inlineable — each becomes its own code action"), per the
// analyzer's ApplicableRefactorInfo::to_code_actions.
func BuildRefactorCodeActions(info tsctypes.ApplicableRefactorInfo) []RefactorCodeAction {
	out := make([]RefactorCodeAction, 0, len(info.Actions))
	for _, action := range info.Actions {
		ca := RefactorCodeAction{
			Title:        action.Description,
			Kind:         ActionKind(action),
			IsPreferred:  IsPreferred(action, info.Actions),
			RefactorName: info.Name,
			ActionName:   action.Name,
		}
		if action.NotApplicableReason != "" {
			ca.Disabled = true
			ca.DisabledReason = action.NotApplicableReason
		}
		out = append(out, ca)
	}
	return out
}
