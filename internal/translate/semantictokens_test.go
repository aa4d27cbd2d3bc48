package translate

import (
	"testing"

	"tsbridge/internal/bridge"
	"tsbridge/internal/lineindex"
)

func TestDecodeSemanticClassifications_Basic(t *testing.T) {
	idx := lineindex.New("const x = 1;")
	// classification = (type+1)<<8 | modifiers; type=5 (say "variable"), modifiers=1
	classification := (5+1)<<8 | 1
	tokens, err := DecodeSemanticClassifications([]int{6, 1, classification}, idx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 1 {
		t.Fatalf("got %d tokens, want 1", len(tokens))
	}
	tok := tokens[0]
	if tok.TokenType != 5 || tok.Modifiers != 1 {
		t.Errorf("got type=%d modifiers=%d, want type=5 modifiers=1", tok.TokenType, tok.Modifiers)
	}
	if tok.Range.Character != 6 {
		t.Errorf("got start character %d, want 6", tok.Range.Character)
	}
}

func TestDecodeSemanticClassifications_CrossLineIsInvariantViolation(t *testing.T) {
	idx := lineindex.New("abc\ndef")
	classification := (1+1)<<8 | 0
	_, err := DecodeSemanticClassifications([]int{2, 3, classification}, idx) // spans "c\nd"
	if err == nil {
		t.Fatal("expected an error for a cross-line span")
	}
	be, ok := err.(*bridge.Error)
	if !ok || be.Kind != bridge.InvariantViolation {
		t.Errorf("got %v, want *bridge.Error{Kind: InvariantViolation}", err)
	}
}

func TestDecodeSemanticClassifications_ClassificationBelowMaskIsInvariantViolation(t *testing.T) {
	idx := lineindex.New("abc")
	_, err := DecodeSemanticClassifications([]int{0, 1, 10}, idx) // 10 < mask 255
	if err == nil {
		t.Fatal("expected an error")
	}
	be, ok := err.(*bridge.Error)
	if !ok || be.Kind != bridge.InvariantViolation {
		t.Errorf("got %v, want *bridge.Error{Kind: InvariantViolation}", err)
	}
}

func TestDecodeSemanticClassifications_MalformedStreamLength(t *testing.T) {
	idx := lineindex.New("abc")
	_, err := DecodeSemanticClassifications([]int{0, 1}, idx)
	if err == nil {
		t.Fatal("expected an error for a stream length not a multiple of 3")
	}
}
