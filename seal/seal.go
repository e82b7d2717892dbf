// Package seal implements the Glyph-Seal minting, rendering, and parsing engine.
//
// A Glyph-Seal is a compact, human-readable identity stamp:
//
//	⟦ CLASS :: ORIGIN :: BREATH_ANCHOR :: STATE ⟧
//
// Seals are minted by Mint or MintFromKey and reconstructed by Parse.
// The two construction paths are intentionally asymmetric: minting
// enforces taxonomy membership, parsing does not (see Parse).
package seal

import (
	"fmt"
	"sort"
	"strings"
)

// Class is a seal class tag. The class set is closed; each class is
// bound 1:1 to a display glyph and the binding is not configurable.
type Class string

const (
	ClassNode Class = "NODE" // sovereign presence / identity
	ClassLaw  Class = "LAW"  // refusal / constitution / invariant
	ClassLink Class = "LINK" // handshake / connection edge
	ClassRite Class = "RITE" // ritual execution / action
	ClassArt  Class = "ART"  // shareable artifact / creation
	ClassWit  Class = "WIT"  // witness record / attestation
)

var classGlyph = map[Class]string{
	ClassNode: "🜁",
	ClassLaw:  "🛑",
	ClassLink: "🌀",
	ClassRite: "🔥",
	ClassArt:  "🕸️",
	ClassWit:  "📜",
}

// State is a seal lifecycle/status tag. The state set is closed.
type State string

const (
	StateValid     State = "VALID"
	StateInvalid   State = "INVALID"
	StateActive    State = "ACTIVE"
	StateDormant   State = "DORMANT"
	StateOpen      State = "OPEN"
	StateSealed    State = "SEALED"
	StateRefused   State = "REFUSED"
	StateReady     State = "READY"
	StateAttested  State = "ATTESTED"
	StateListening State = "LISTENING"
	StateRevoked   State = "REVOKED"
)

var validStates = map[State]bool{
	StateValid:     true,
	StateInvalid:   true,
	StateActive:    true,
	StateDormant:   true,
	StateOpen:      true,
	StateSealed:    true,
	StateRefused:   true,
	StateReady:     true,
	StateAttested:  true,
	StateListening: true,
	StateRevoked:   true,
}

// Classes returns the valid class tags in sorted order.
func Classes() []Class {
	out := make([]Class, 0, len(classGlyph))
	for c := range classGlyph {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// States returns the valid state tags in sorted order.
func States() []State {
	out := make([]State, 0, len(validStates))
	for s := range validStates {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// GlyphFor returns the display glyph bound to a class, or "" if the
// class is not in the taxonomy.
func GlyphFor(c Class) string {
	return classGlyph[c]
}

// ValidClass reports taxonomy membership for a class tag.
func ValidClass(c Class) bool {
	_, ok := classGlyph[c]
	return ok
}

// ValidState reports taxonomy membership for a state tag.
func ValidState(s State) bool {
	return validStates[s]
}

func classList() string {
	var names []string
	for _, c := range Classes() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func stateList() string {
	var names []string
	for _, s := range States() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// Seal is a minted Glyph-Seal identity stamp.
//
// A Seal is a value: once minted it is never mutated. "Changing" a seal
// means minting a new one. BreathAnchor is generated, never
// hand-constructed by callers.
type Seal struct {
	Class        Class
	Origin       string
	BreathAnchor string
	State        State
	Witness      string // optional attestation line, not part of the canonical form
}

// String returns the canonical render:
//
//	⟦ CLASS :: ORIGIN :: BREATH_ANCHOR :: STATE ⟧
//
// The render is a pure function of class, origin, anchor, and state.
// Witness never appears inside the brackets.
func (s Seal) String() string {
	return fmt.Sprintf("⟦ %s :: %s :: %s :: %s ⟧", s.Class, s.Origin, s.BreathAnchor, s.State)
}

// WithWitness formats the seal with a witness line above the canonical
// render. The witness line is display-only and never affects parsing.
func (s Seal) WithWitness(line string) string {
	return fmt.Sprintf("📜 Witness: %s\n%s", line, s)
}

// Record is the machine-readable export of a seal.
type Record struct {
	Class        string `json:"class"`
	Origin       string `json:"origin"`
	BreathAnchor string `json:"breath_anchor"`
	State        string `json:"state"`
	Witness      string `json:"witness,omitempty"`
	Seal         string `json:"seal"`
}

// Record returns the structured sibling representation of the seal,
// including its canonical render.
func (s Seal) Record() Record {
	return Record{
		Class:        string(s.Class),
		Origin:       s.Origin,
		BreathAnchor: s.BreathAnchor,
		State:        string(s.State),
		Witness:      s.Witness,
		Seal:         s.String(),
	}
}
