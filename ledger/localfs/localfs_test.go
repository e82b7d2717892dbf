package localfs

import (
	"os"
	"testing"

	"github.com/Pantheon-LadderWorks/glyph-forge/cidutil"
	"github.com/Pantheon-LadderWorks/glyph-forge/ledger"
	"github.com/Pantheon-LadderWorks/glyph-forge/seal"
)

func testLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l
}

func TestLedger_RecordAndLookup(t *testing.T) {
	l := testLedger(t)

	s, err := seal.Mint("NODE", "PANTHEON")
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	id, err := l.PutSeal(s)
	if err != nil {
		t.Fatalf("PutSeal: %v", err)
	}
	if !l.Has(id) {
		t.Fatal("Has: expected recorded seal")
	}

	b, err := l.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got, ok := seal.Parse(string(b))
	if !ok {
		t.Fatalf("recorded bytes do not parse: %q", b)
	}
	if got.BreathAnchor != s.BreathAnchor {
		t.Errorf("anchor mismatch after ledger round trip: %q vs %q", got.BreathAnchor, s.BreathAnchor)
	}

	// The ledger CID matches the seal's content identifier.
	want, err := cidutil.SealCID(s)
	if err != nil {
		t.Fatalf("SealCID: %v", err)
	}
	if id != want {
		t.Errorf("ledger CID %s != seal CID %s", id, want)
	}
}

func TestLedger_PutIdempotent(t *testing.T) {
	l := testLedger(t)
	canonical := []byte("⟦ NODE :: PANTHEON :: 🜁-ABCD :: VALID ⟧")
	a, err := l.Put(canonical)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	b, err := l.Put(canonical)
	if err != nil {
		t.Fatalf("second Put: %v", err)
	}
	if a != b {
		t.Fatalf("idempotent Put returned different CIDs: %s vs %s", a, b)
	}
}

func TestLedger_RejectsNonSealBytes(t *testing.T) {
	l := testLedger(t)
	bogus := seal.Seal{Class: "node", Origin: "x", BreathAnchor: "y", State: "valid"}
	if _, err := l.PutSeal(bogus); err != ledger.ErrNotASeal {
		t.Fatalf("PutSeal: got %v want %v", err, ledger.ErrNotASeal)
	}
}

func TestLedger_DetectsOutOfBandMutation(t *testing.T) {
	l := testLedger(t)
	orig := []byte("⟦ LAW :: C-FED-001 :: 🛑-QQQQ :: SEALED ⟧")
	id, err := l.Put(orig)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	path := l.pathFor(id)
	if err := os.Chmod(path, 0o644); err != nil {
		t.Fatalf("Chmod: %v", err)
	}
	if err := os.WriteFile(path, []byte("corrupted"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := l.Get(id); err != ledger.ErrCIDMismatch {
		t.Fatalf("Get after corruption: got %v want %v", err, ledger.ErrCIDMismatch)
	}
	if _, err := l.Put(orig); err != ledger.ErrImmutable {
		t.Fatalf("Put after corruption: got %v want %v", err, ledger.ErrImmutable)
	}
}

func TestLedger_GetAbsent(t *testing.T) {
	l := testLedger(t)
	id, err := cidutil.CIDv1RawSHA256CID([]byte("never recorded"))
	if err != nil {
		t.Fatalf("CIDv1RawSHA256CID: %v", err)
	}
	if _, err := l.Get(id); !ledger.IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if l.Has(id) {
		t.Fatal("Has: expected false for absent CID")
	}
}
