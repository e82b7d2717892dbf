package seal

import (
	"fmt"
	"strings"
)

type mintOptions struct {
	state    State
	mode     Mode
	material string
	hasMat   bool
	witness  string
}

// Option configures a mint operation.
type Option func(*mintOptions)

// WithState sets the seal state (default VALID). Normalized to upper case.
func WithState(state string) Option {
	return func(o *mintOptions) { o.state = State(strings.ToUpper(state)) }
}

// WithMode selects the anchor strategy for Mint (default hybrid).
// MintFromKey ignores this option; its strategy is always key-derived.
func WithMode(mode Mode) Option {
	return func(o *mintOptions) { o.mode = mode }
}

// WithMaterial supplies the content to hash for deterministic minting.
func WithMaterial(material string) Option {
	return func(o *mintOptions) { o.material = material; o.hasMat = true }
}

// WithWitness attaches a free-text attestation line. The witness is
// never part of the canonical anchor/state identity.
func WithWitness(line string) Option {
	return func(o *mintOptions) { o.witness = line }
}

// checkTaxonomy normalizes and validates class/state membership. Shared
// by both mint entry points; the parser deliberately does not use it.
func checkTaxonomy(class, origin string, state State) (Class, string, State, error) {
	cn := Class(strings.ToUpper(class))
	st := State(strings.ToUpper(string(state)))
	if !ValidClass(cn) {
		return "", "", "", newError(KindTaxonomy, "GLYPH-TAX-001",
			fmt.Sprintf("invalid class %q, must be one of: %s", cn, classList()))
	}
	if !ValidState(st) {
		return "", "", "", newError(KindTaxonomy, "GLYPH-TAX-002",
			fmt.Sprintf("invalid state %q, must be one of: %s", st, stateList()))
	}
	if origin == "" {
		return "", "", "", newError(KindTaxonomy, "GLYPH-TAX-003", "origin must not be empty")
	}
	return cn, strings.ToUpper(origin), st, nil
}

// Mint mints a Glyph-Seal.
//
// Class and state are normalized to upper case and must belong to their
// fixed taxonomies. The default state is VALID and the default mode is
// hybrid. Deterministic mode requires WithMaterial. There are no side
// effects beyond entropy and clock reads.
func Mint(class, origin string, opts ...Option) (Seal, error) {
	o := mintOptions{state: StateValid, mode: ModeHybrid}
	for _, opt := range opts {
		opt(&o)
	}

	cn, org, st, err := checkTaxonomy(class, origin, o.state)
	if err != nil {
		return Seal{}, err
	}

	spec, ok := anchorSpecs[o.mode]
	if !ok || o.mode == modeKey {
		return Seal{}, newError(KindMode, "GLYPH-MODE-001",
			fmt.Sprintf("invalid mode %q, must be %q, %q, or %q", o.mode, ModeRandom, ModeHybrid, ModeDeterministic))
	}
	if o.mode == ModeDeterministic && !o.hasMat {
		return Seal{}, newError(KindMaterial, "GLYPH-MAT-001", "material is required for deterministic anchors")
	}

	anchor, err := spec.generate(GlyphFor(cn), []byte(o.material))
	if err != nil {
		return Seal{}, err
	}

	return Seal{
		Class:        cn,
		Origin:       org,
		BreathAnchor: anchor,
		State:        st,
		Witness:      o.witness,
	}, nil
}

// MintFromKey mints a Glyph-Seal whose anchor is derived from a
// public key. Identical key bytes always produce the identical anchor.
//
// The anchor is a fingerprint, not proof of possession; proving
// ownership is an out-of-band challenge/sign protocol outside this
// engine. WithMode and WithMaterial are ignored.
func MintFromKey(class, origin string, publicKey []byte, opts ...Option) (Seal, error) {
	o := mintOptions{state: StateValid}
	for _, opt := range opts {
		opt(&o)
	}

	cn, org, st, err := checkTaxonomy(class, origin, o.state)
	if err != nil {
		return Seal{}, err
	}
	if len(publicKey) == 0 {
		return Seal{}, newError(KindKey, "GLYPH-KEY-001", "public key bytes must not be empty")
	}

	anchor, err := anchorSpecs[modeKey].generate(GlyphFor(cn), publicKey)
	if err != nil {
		return Seal{}, err
	}

	return Seal{
		Class:        cn,
		Origin:       org,
		BreathAnchor: anchor,
		State:        st,
		Witness:      o.witness,
	}, nil
}
