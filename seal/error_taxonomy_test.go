package seal

import (
	"errors"
	"strings"
	"testing"
)

func assertRule(t *testing.T, err error, kind Kind, ruleID string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error")
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected structured *seal.Error, got %T", err)
	}
	if e.Kind != kind {
		t.Fatalf("expected Kind %s, got %s", kind, e.Kind)
	}
	if e.RuleID != ruleID {
		t.Fatalf("expected RuleID %s, got %s", ruleID, e.RuleID)
	}
}

func TestMint_ErrorTaxonomy_BogusClass(t *testing.T) {
	_, err := Mint("BOGUS", "X")
	assertRule(t, err, KindTaxonomy, "GLYPH-TAX-001")
	if !strings.Contains(err.Error(), "NODE") {
		t.Errorf("taxonomy message should enumerate valid classes: %q", err.Error())
	}
}

func TestMint_ErrorTaxonomy_BogusState(t *testing.T) {
	_, err := Mint("NODE", "X", WithState("BOGUS"))
	assertRule(t, err, KindTaxonomy, "GLYPH-TAX-002")
	if !strings.Contains(err.Error(), "SEALED") {
		t.Errorf("taxonomy message should enumerate valid states: %q", err.Error())
	}
}

func TestMint_ErrorTaxonomy_EmptyOrigin(t *testing.T) {
	_, err := Mint("NODE", "")
	assertRule(t, err, KindTaxonomy, "GLYPH-TAX-003")
}

func TestMint_ErrorTaxonomy_UnknownMode(t *testing.T) {
	_, err := Mint("NODE", "X", WithMode("unknown"))
	assertRule(t, err, KindMode, "GLYPH-MODE-001")
}

func TestMint_ErrorTaxonomy_KeyModeNotSelectable(t *testing.T) {
	// The key strategy is reachable only through MintFromKey.
	_, err := Mint("NODE", "X", WithMode("key"))
	assertRule(t, err, KindMode, "GLYPH-MODE-001")
}

func TestMint_ErrorTaxonomy_MissingMaterial(t *testing.T) {
	_, err := Mint("NODE", "X", WithMode(ModeDeterministic))
	assertRule(t, err, KindMaterial, "GLYPH-MAT-001")
}

func TestMintFromKey_ErrorTaxonomy_EmptyKey(t *testing.T) {
	_, err := MintFromKey("NODE", "X", nil)
	assertRule(t, err, KindKey, "GLYPH-KEY-001")
}

func TestIsKindAndRuleID_Helpers(t *testing.T) {
	_, err := Mint("BOGUS", "X")
	if !IsKind(err, KindTaxonomy) {
		t.Error("IsKind should match KindTaxonomy")
	}
	if IsKind(err, KindMode) {
		t.Error("IsKind should not match KindMode")
	}
	if RuleID(err) != "GLYPH-TAX-001" {
		t.Errorf("RuleID helper returned %q", RuleID(err))
	}
	if RuleID(errors.New("plain")) != "" {
		t.Error("RuleID should be empty for unstructured errors")
	}
}
