package bridge

import (
	"context"
	"encoding/json"

	"github.com/tliron/commonlog"

	"tsbridge/internal/host"
	"tsbridge/internal/request"
	"tsbridge/internal/snapshot"
	"tsbridge/internal/specifier"
)

// Bridge is the Cancellation & Dispatch Facade: the public async API the
// rest of the language server calls (spec.md §4.9). One method per
// request kind in spec.md §6.2, each packaging (kind, snapshot) plus a
// caller-supplied cancel token into a request and awaiting the reply
// slot.
type Bridge struct {
	host       *host.Host
	specifiers *specifier.Normalizer
}

// New wires a Bridge around an already-constructed Host. Bridge
// construction itself (spec.md §6.1: performance recorder, HTTP cache
// handle, initial snapshot) happens one layer up, in the server package,
// which owns building the Host with its Analyzer factory.
func New(h *host.Host, specifiers *specifier.Normalizer) *Bridge {
	return &Bridge{host: h, specifiers: specifiers}
}

// call is the shared plumbing every facade method uses: build a request,
// enqueue it, and await its reply, translating ctx cancellation and
// dropped tokens into the bridge.Error taxonomy.
func (b *Bridge) call(ctx context.Context, kind request.Kind, snap *snapshot.Snapshot, args map[string]interface{}, token *request.CancelToken) (interface{}, error) {
	if token == nil {
		token = request.NewCancelToken()
	}
	req := &request.Request{
		Kind:     kind,
		Snapshot: snap,
		Args:     args,
		Reply:    make(chan request.Result, 1),
		Token:    token,
	}
	b.host.Enqueue(req)

	select {
	case res := <-req.Reply:
		if res.Err != nil {
			return nil, translateHostError(res.Err)
		}
		if token.IsCancelled() {
			return res.Data, newError(CancelDelivered, "request kind %s completed after cancellation", kind)
		}
		return res.Data, nil
	case <-ctx.Done():
		token.Cancel()
		return nil, newError(TransportClosed, "caller context done while awaiting %s: %v", kind, ctx.Err())
	}
}

// hostKinder is implemented by host's internal error type; declared here
// to translate without host needing to depend on bridge.
type hostKinder interface {
	Error() string
	Kind() string
}

func translateHostError(err error) *Error {
	if hk, ok := err.(hostKinder); ok {
		switch hk.Kind() {
		case "NoResponse":
			return newError(NoResponse, "%s", hk.Error())
		case "DecodeError":
			return newError(DecodeError, "%s", hk.Error())
		case "AnalyzerScriptError":
			return newError(AnalyzerScriptError, "%s", hk.Error())
		}
	}
	return newError(AnalyzerScriptError, "%s", err.Error())
}

// decode unmarshals a facade result's interface{} payload into dst via a
// JSON round trip, returning a DecodeError on mismatch (spec.md §7
// DecodeError: "the JSON returned by the analyzer cannot be shaped into
// the expected response type").
func decode(data interface{}, dst interface{}) error {
	b, err := json.Marshal(data)
	if err != nil {
		return newError(DecodeError, "re-marshaling response: %v", err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return newError(DecodeError, "shaping response: %v", err)
	}
	return nil
}

// --- Facade operations (spec.md §6.2) ---

// GetQuickInfo requests hover/quick-info data at a position.
func (b *Bridge) GetQuickInfo(ctx context.Context, snap *snapshot.Snapshot, specifier string, position int, token *request.CancelToken) (map[string]interface{}, error) {
	data, err := b.call(ctx, request.GetQuickInfo, snap, map[string]interface{}{
		"specifier": specifier,
		"position":  position,
	}, token)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if data != nil {
		if err := decode(data, &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// GetDiagnostics requests diagnostics for a set of specifiers. Diagnostics
// is an authoritative operation (spec.md §7 propagation policy): errors
// are surfaced, never silently emptied.
func (b *Bridge) GetDiagnostics(ctx context.Context, snap *snapshot.Snapshot, specifiers []string, token *request.CancelToken) ([]interface{}, error) {
	data, err := b.call(ctx, request.GetDiagnostics, snap, map[string]interface{}{
		"specifiers": specifiers,
	}, token)
	if err != nil {
		return nil, err
	}
	list, _ := data.([]interface{})
	return list, nil
}

// GetCompletions requests a completion list at a position.
func (b *Bridge) GetCompletions(ctx context.Context, snap *snapshot.Snapshot, specifier string, position int, preferences, formatCodeSettings map[string]interface{}, token *request.CancelToken) (map[string]interface{}, error) {
	data, err := b.call(ctx, request.GetCompletions, snap, map[string]interface{}{
		"specifier":          specifier,
		"position":           position,
		"preferences":        preferences,
		"formatCodeSettings": formatCodeSettings,
	}, token)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if data != nil {
		if err := decode(data, &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// GetCompletionDetails resolves a single completion entry's richer detail
// payload.
func (b *Bridge) GetCompletionDetails(ctx context.Context, snap *snapshot.Snapshot, args map[string]interface{}, token *request.CancelToken) (map[string]interface{}, error) {
	data, err := b.call(ctx, request.GetCompletionDetails, snap, map[string]interface{}{"args": args}, token)
	if err != nil {
		// GetCompletionDetails is best-effort, like GetCodeFixes: log and
		// return empty rather than surfacing to the editor.
		commonlog.GetLogger("tsbridge.bridge").Warningf("GetCompletionDetails failed: %v", err)
		return nil, nil
	}
	var out map[string]interface{}
	if data != nil {
		_ = decode(data, &out)
	}
	return out, nil
}

// GetCodeFixes is best-effort (spec.md §4.9): errors are logged here and
// an empty list returned, never surfaced.
func (b *Bridge) GetCodeFixes(ctx context.Context, snap *snapshot.Snapshot, specifier string, start, end int, errorCodes []int, formatCodeSettings map[string]interface{}, token *request.CancelToken) ([]interface{}, error) {
	data, err := b.call(ctx, request.GetCodeFixes, snap, map[string]interface{}{
		"specifier":          specifier,
		"startPosition":      start,
		"endPosition":        end,
		"errorCodes":         errorCodes,
		"formatCodeSettings": formatCodeSettings,
	}, token)
	if err != nil {
		commonlog.GetLogger("tsbridge.bridge").Warningf("GetCodeFixes failed: %v", err)
		return nil, nil
	}
	list, _ := data.([]interface{})
	return list, nil
}

// GetNavigationTree requests the outline tree for one document.
func (b *Bridge) GetNavigationTree(ctx context.Context, snap *snapshot.Snapshot, specifier string, token *request.CancelToken) (map[string]interface{}, error) {
	data, err := b.call(ctx, request.GetNavigationTree, snap, map[string]interface{}{"specifier": specifier}, token)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if data != nil {
		if err := decode(data, &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// GetOutliningSpans requests foldable regions for one document.
func (b *Bridge) GetOutliningSpans(ctx context.Context, snap *snapshot.Snapshot, specifier string, token *request.CancelToken) ([]interface{}, error) {
	data, err := b.call(ctx, request.GetOutliningSpans, snap, map[string]interface{}{"specifier": specifier}, token)
	if err != nil {
		return nil, err
	}
	list, _ := data.([]interface{})
	return list, nil
}

// GetEncodedSemanticClassifications requests the flat classification
// stream for a span.
func (b *Bridge) GetEncodedSemanticClassifications(ctx context.Context, snap *snapshot.Snapshot, specifier string, span request.Range, token *request.CancelToken) (map[string]interface{}, error) {
	data, err := b.call(ctx, request.GetEncodedSemanticClassifications, snap, map[string]interface{}{
		"specifier": specifier,
		"span":      span,
	}, token)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if data != nil {
		if err := decode(data, &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FindRenameLocations requests every edit location for a rename.
func (b *Bridge) FindRenameLocations(ctx context.Context, snap *snapshot.Snapshot, specifier string, position int, findInStrings, findInComments, providePrefixAndSuffix bool, token *request.CancelToken) ([]interface{}, error) {
	data, err := b.call(ctx, request.FindRenameLocations, snap, map[string]interface{}{
		"specifier":                            specifier,
		"position":                             position,
		"findInStrings":                        findInStrings,
		"findInComments":                       findInComments,
		"providePrefixAndSuffixTextForRename": providePrefixAndSuffix,
	}, token)
	if err != nil {
		return nil, err
	}
	list, _ := data.([]interface{})
	return list, nil
}

// PrepareCallHierarchy requests the call-hierarchy root item(s) at a
// position.
func (b *Bridge) PrepareCallHierarchy(ctx context.Context, snap *snapshot.Snapshot, specifier string, position int, token *request.CancelToken) ([]interface{}, error) {
	data, err := b.call(ctx, request.PrepareCallHierarchy, snap, map[string]interface{}{
		"specifier": specifier,
		"position":  position,
	}, token)
	if err != nil {
		return nil, err
	}
	list, _ := data.([]interface{})
	return list, nil
}

// ProvideInlayHints requests inlay hints over a span.
func (b *Bridge) ProvideInlayHints(ctx context.Context, snap *snapshot.Snapshot, specifier string, span request.Range, preferences map[string]interface{}, token *request.CancelToken) ([]interface{}, error) {
	data, err := b.call(ctx, request.ProvideInlayHints, snap, map[string]interface{}{
		"specifier":   specifier,
		"span":        span,
		"preferences": preferences,
	}, token)
	if err != nil {
		return nil, err
	}
	list, _ := data.([]interface{})
	return list, nil
}

// Restart discards and recreates the analyzer runtime on the host thread.
func (b *Bridge) Restart(ctx context.Context) error {
	_, err := b.call(ctx, request.Restart, nil, nil, nil)
	return err
}

// Configure sends compiler options to the analyzer.
func (b *Bridge) Configure(ctx context.Context, snap *snapshot.Snapshot, compilerOptions map[string]interface{}, token *request.CancelToken) error {
	_, err := b.call(ctx, request.Configure, snap, map[string]interface{}{"compilerOptions": compilerOptions}, token)
	return err
}

// FindReferences requests every reference to the symbol at a position.
func (b *Bridge) FindReferences(ctx context.Context, snap *snapshot.Snapshot, specifier string, position int, token *request.CancelToken) ([]interface{}, error) {
	data, err := b.call(ctx, request.FindReferences, snap, map[string]interface{}{
		"specifier": specifier,
		"position":  position,
	}, token)
	if err != nil {
		return nil, err
	}
	list, _ := data.([]interface{})
	return list, nil
}

// GetDefinition requests the definition location(s) of the symbol at a
// position.
func (b *Bridge) GetDefinition(ctx context.Context, snap *snapshot.Snapshot, specifier string, position int, token *request.CancelToken) ([]interface{}, error) {
	data, err := b.call(ctx, request.GetDefinition, snap, map[string]interface{}{
		"specifier": specifier,
		"position":  position,
	}, token)
	if err != nil {
		return nil, err
	}
	list, _ := data.([]interface{})
	return list, nil
}

// GetTypeDefinition requests the type-definition location(s) of the symbol
// at a position.
func (b *Bridge) GetTypeDefinition(ctx context.Context, snap *snapshot.Snapshot, specifier string, position int, token *request.CancelToken) ([]interface{}, error) {
	data, err := b.call(ctx, request.GetTypeDefinition, snap, map[string]interface{}{
		"specifier": specifier,
		"position":  position,
	}, token)
	if err != nil {
		return nil, err
	}
	list, _ := data.([]interface{})
	return list, nil
}

// GetImplementation requests the implementation location(s) of the symbol
// at a position.
func (b *Bridge) GetImplementation(ctx context.Context, snap *snapshot.Snapshot, specifier string, position int, token *request.CancelToken) ([]interface{}, error) {
	data, err := b.call(ctx, request.GetImplementation, snap, map[string]interface{}{
		"specifier": specifier,
		"position":  position,
	}, token)
	if err != nil {
		return nil, err
	}
	list, _ := data.([]interface{})
	return list, nil
}

// GetDocumentHighlights requests same-symbol highlight ranges across a set
// of files to search.
func (b *Bridge) GetDocumentHighlights(ctx context.Context, snap *snapshot.Snapshot, specifier string, position int, filesToSearch []string, token *request.CancelToken) ([]interface{}, error) {
	data, err := b.call(ctx, request.GetDocumentHighlights, snap, map[string]interface{}{
		"specifier":     specifier,
		"position":      position,
		"filesToSearch": filesToSearch,
	}, token)
	if err != nil {
		return nil, err
	}
	list, _ := data.([]interface{})
	return list, nil
}

// GetNavigateToItems requests a workspace-wide symbol search.
func (b *Bridge) GetNavigateToItems(ctx context.Context, snap *snapshot.Snapshot, search string, maxResultCount int, file string, token *request.CancelToken) ([]interface{}, error) {
	data, err := b.call(ctx, request.GetNavigateToItems, snap, map[string]interface{}{
		"search":         search,
		"maxResultCount": maxResultCount,
		"file":           file,
	}, token)
	if err != nil {
		return nil, err
	}
	list, _ := data.([]interface{})
	return list, nil
}

// GetSmartSelectionRange requests the nested expand-selection ranges at a
// position.
func (b *Bridge) GetSmartSelectionRange(ctx context.Context, snap *snapshot.Snapshot, specifier string, position int, token *request.CancelToken) (map[string]interface{}, error) {
	data, err := b.call(ctx, request.GetSmartSelectionRange, snap, map[string]interface{}{
		"specifier": specifier,
		"position":  position,
	}, token)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if data != nil {
		if err := decode(data, &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// GetSignatureHelpItems requests signature-help for a call at a position.
func (b *Bridge) GetSignatureHelpItems(ctx context.Context, snap *snapshot.Snapshot, specifier string, position int, options map[string]interface{}, token *request.CancelToken) (map[string]interface{}, error) {
	data, err := b.call(ctx, request.GetSignatureHelpItems, snap, map[string]interface{}{
		"specifier": specifier,
		"position":  position,
		"options":   options,
	}, token)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if data != nil {
		if err := decode(data, &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// GetSupportedCodeFixes lists error codes the analyzer can offer fixes
// for.
func (b *Bridge) GetSupportedCodeFixes(ctx context.Context, snap *snapshot.Snapshot, token *request.CancelToken) ([]interface{}, error) {
	data, err := b.call(ctx, request.GetSupportedCodeFixes, snap, nil, token)
	if err != nil {
		return nil, nil
	}
	list, _ := data.([]interface{})
	return list, nil
}

// GetCombinedCodeFix applies a fix-id across every file it touches.
func (b *Bridge) GetCombinedCodeFix(ctx context.Context, snap *snapshot.Snapshot, specifier string, fixID interface{}, formatCodeSettings map[string]interface{}, token *request.CancelToken) (map[string]interface{}, error) {
	data, err := b.call(ctx, request.GetCombinedCodeFix, snap, map[string]interface{}{
		"specifier":          specifier,
		"fixId":              fixID,
		"formatCodeSettings": formatCodeSettings,
	}, token)
	if err != nil {
		return nil, nil
	}
	var out map[string]interface{}
	if data != nil {
		_ = decode(data, &out)
	}
	return out, nil
}

// GetApplicableRefactors lists refactor families available at a range.
func (b *Bridge) GetApplicableRefactors(ctx context.Context, snap *snapshot.Snapshot, specifier string, span request.Range, kind string, token *request.CancelToken) ([]interface{}, error) {
	data, err := b.call(ctx, request.GetApplicableRefactors, snap, map[string]interface{}{
		"specifier": specifier,
		"range":     span,
		"kind":      kind,
	}, token)
	if err != nil {
		return nil, nil
	}
	list, _ := data.([]interface{})
	return list, nil
}

// GetEditsForRefactor resolves one refactor action into concrete edits.
func (b *Bridge) GetEditsForRefactor(ctx context.Context, snap *snapshot.Snapshot, specifier string, formatCodeSettings map[string]interface{}, span request.Range, refactorName, actionName string, token *request.CancelToken) (map[string]interface{}, error) {
	data, err := b.call(ctx, request.GetEditsForRefactor, snap, map[string]interface{}{
		"specifier":          specifier,
		"formatCodeSettings": formatCodeSettings,
		"range":              span,
		"refactorName":       refactorName,
		"actionName":         actionName,
	}, token)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if data != nil {
		if err := decode(data, &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ProvideCallHierarchyIncomingCalls requests callers of a call-hierarchy
// item.
func (b *Bridge) ProvideCallHierarchyIncomingCalls(ctx context.Context, snap *snapshot.Snapshot, specifier string, position int, token *request.CancelToken) ([]interface{}, error) {
	data, err := b.call(ctx, request.ProvideCallHierarchyIncomingCalls, snap, map[string]interface{}{
		"specifier": specifier,
		"position":  position,
	}, token)
	if err != nil {
		return nil, err
	}
	list, _ := data.([]interface{})
	return list, nil
}

// ProvideCallHierarchyOutgoingCalls requests callees of a call-hierarchy
// item.
func (b *Bridge) ProvideCallHierarchyOutgoingCalls(ctx context.Context, snap *snapshot.Snapshot, specifier string, position int, token *request.CancelToken) ([]interface{}, error) {
	data, err := b.call(ctx, request.ProvideCallHierarchyOutgoingCalls, snap, map[string]interface{}{
		"specifier": specifier,
		"position":  position,
	}, token)
	if err != nil {
		return nil, err
	}
	list, _ := data.([]interface{})
	return list, nil
}
