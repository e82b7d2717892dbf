package seal

import "regexp"

// sealPattern is the canonical bracket-delimited form. Anything outside
// ⟦ ⟧ is noise; inside is protected structure. The pattern is anchored
// to nothing: the first match anywhere in the input wins.
var sealPattern = regexp.MustCompile(
	`⟦\s*` +
		`([A-Z]+)\s*::\s*` + // class
		`([A-Z0-9_\-]+)\s*::\s*` + // origin
		`(.+?)\s*::\s*` + // anchor, opaque up to the next separator
		`([A-Z]+)` + // state
		`\s*⟧`)

// Components is the structural parse of a rendered seal.
//
// ValidClass and ValidState are independent taxonomy flags: a
// structurally valid seal with an unrecognized class or state is
// reported, not rejected.
type Components struct {
	Class        string
	Origin       string
	BreathAnchor string
	State        string
	ValidClass   bool
	ValidState   bool
}

// VerifySyntax locates the first Glyph-Seal substring in text and
// returns its components. The second return is false when no seal is
// found anywhere in the input; "not a seal" is a legitimate negative
// answer, never an error.
func VerifySyntax(text string) (Components, bool) {
	m := sealPattern.FindStringSubmatch(text)
	if m == nil {
		return Components{}, false
	}
	return Components{
		Class:        m[1],
		Origin:       m[2],
		BreathAnchor: m[3],
		State:        m[4],
		ValidClass:   ValidClass(Class(m[1])),
		ValidState:   ValidState(State(m[4])),
	}, true
}

// Parse reconstructs a Seal from a rendered seal string.
//
// This path is intentionally lenient: the extracted class and state are
// not re-validated against the taxonomies, so a parsed Seal may hold an
// out-of-taxonomy class or state. Mint-construction is strict,
// parse-reconstruction is not; callers wanting taxonomy checks use the
// flags on VerifySyntax.
func Parse(text string) (Seal, bool) {
	c, ok := VerifySyntax(text)
	if !ok {
		return Seal{}, false
	}
	return Seal{
		Class:        Class(c.Class),
		Origin:       c.Origin,
		BreathAnchor: c.BreathAnchor,
		State:        State(c.State),
	}, true
}
