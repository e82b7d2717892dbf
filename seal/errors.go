package seal

import "errors"

// Kind is a stable category for programmatic error handling.
//
// Callers should branch on Kind/RuleID rather than matching error
// strings; Error() messages are intended for humans and may evolve.
type Kind string

const (
	KindTaxonomy Kind = "Taxonomy" // class or state outside its fixed set
	KindMode     Kind = "Mode"     // unrecognized minting mode
	KindMaterial Kind = "Material" // deterministic mode without material
	KindKey      Kind = "Key"      // unusable public key input
	KindInternal Kind = "Internal"
)

// Error is the engine's structured error type.
//
// RuleID is a stable identifier (e.g., GLYPH-TAX-001) naming the
// violated invariant. All engine errors are caller input errors; none
// are transient or retryable.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}
