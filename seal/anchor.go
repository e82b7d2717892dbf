package seal

import (
	"crypto/rand"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Mode selects the breath-anchor generation strategy for Mint.
type Mode string

const (
	// ModeRandom draws 80 bits of entropy: UUID-grade collision
	// resistance (~2^40 mints before 50% collision risk).
	ModeRandom Mode = "random"
	// ModeHybrid prefixes a YYYYMMDD date shard to 40 bits of entropy:
	// sortable by mint date, unique within a date.
	ModeHybrid Mode = "hybrid"
	// ModeDeterministic hashes caller material: same input, same seal.
	ModeDeterministic Mode = "deterministic"

	// modeKey is the MintFromKey strategy; it is not selectable
	// through Mint's mode option.
	modeKey Mode = "key"
)

// anchorSpec holds the per-strategy parameters. Strategies are a
// closed set selected by mode; there is no dynamic dispatch.
type anchorSpec struct {
	entropyBytes int   // random input, 0 for hash-derived anchors
	digestBytes  int   // BLAKE2b digest size, 0 for pure entropy
	groups       []int // shard grouping
	dated        bool  // insert a YYYYMMDD shard between glyph and shard
}

var anchorSpecs = map[Mode]anchorSpec{
	ModeRandom:        {entropyBytes: 10, groups: []int{4, 4, 4}},
	ModeHybrid:        {entropyBytes: 5, groups: []int{4, 4}, dated: true},
	ModeDeterministic: {digestBytes: 6, groups: []int{4, 4}},
	modeKey:           {digestBytes: 10, groups: []int{4, 4, 4}},
}

// generate produces "<glyph>-<shard>" (or "<glyph>-<date>-<shard>" for
// dated strategies) from entropy or from the given hash input.
func (a anchorSpec) generate(glyph string, hashInput []byte) (string, error) {
	var raw []byte
	switch {
	case a.entropyBytes > 0:
		raw = make([]byte, a.entropyBytes)
		if _, err := rand.Read(raw); err != nil {
			return "", &Error{Kind: KindInternal, RuleID: "GLYPH-INT-001", Message: "entropy source failure", Cause: err}
		}
	case a.digestBytes > 0:
		h, err := blake2b.New(a.digestBytes, nil)
		if err != nil {
			return "", &Error{Kind: KindInternal, RuleID: "GLYPH-INT-002", Message: "digest init failure", Cause: err}
		}
		h.Write(hashInput)
		raw = h.Sum(nil)
	default:
		return "", newError(KindInternal, "GLYPH-INT-003", "anchor strategy has no input")
	}

	if a.dated {
		date := time.Now().Format("20060102")
		return fmt.Sprintf("%s-%s-%s", glyph, date, shard(raw, a.groups...)), nil
	}
	return fmt.Sprintf("%s-%s", glyph, shard(raw, a.groups...)), nil
}
