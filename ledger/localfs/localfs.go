// Package localfs is the filesystem-backed seal ledger.
package localfs

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"github.com/ipfs/go-cid"

	"github.com/Pantheon-LadderWorks/glyph-forge/cidutil"
	"github.com/Pantheon-LadderWorks/glyph-forge/ledger"
	"github.com/Pantheon-LadderWorks/glyph-forge/seal"
)

// Ledger records canonical seal renders on the local filesystem.
//
// Entries are immutable and keyed strictly by CID. The implementation
// is offline and deterministic: it never uses the network and never
// depends on wall-clock time.
type Ledger struct {
	root string
}

// New constructs a ledger rooted at root. The directory is created if needed.
func New(root string) (*Ledger, error) {
	if root == "" {
		return nil, errors.New("localfs: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Ledger{root: root}, nil
}

// Put records canonical bytes and returns their CID. Recording the
// same bytes twice is a no-op; recording different bytes under a path
// collision is an immutability violation.
func (l *Ledger) Put(canonical []byte) (cid.Cid, error) {
	id, err := cidutil.CIDv1RawSHA256CID(canonical)
	if err != nil {
		return cid.Undef, err
	}
	if !id.Defined() {
		return cid.Undef, ledger.ErrInvalidCID
	}

	path := l.pathFor(id)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return cid.Undef, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o444)
	if err != nil {
		if os.IsExist(err) {
			existing, rerr := l.Get(id)
			if rerr != nil {
				return cid.Undef, ledger.ErrImmutable
			}
			if !bytes.Equal(existing, canonical) {
				return cid.Undef, ledger.ErrImmutable
			}
			return id, nil
		}
		return cid.Undef, err
	}
	defer f.Close()

	if _, err := f.Write(canonical); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return cid.Undef, err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return cid.Undef, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return cid.Undef, err
	}

	return id, nil
}

// PutSeal records a minted seal's canonical render after checking that
// the bytes really are a seal. Arbitrary blobs do not belong in the
// ledger.
func (l *Ledger) PutSeal(s seal.Seal) (cid.Cid, error) {
	canonical := []byte(s.String())
	if _, ok := seal.VerifySyntax(string(canonical)); !ok {
		return cid.Undef, ledger.ErrNotASeal
	}
	return l.Put(canonical)
}

func (l *Ledger) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, ledger.ErrInvalidCID
	}
	b, err := os.ReadFile(l.pathFor(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ledger.ErrNotFound
		}
		return nil, err
	}
	got, err := cidutil.CIDv1RawSHA256CID(b)
	if err != nil {
		return nil, err
	}
	if got != id {
		return nil, ledger.ErrCIDMismatch
	}
	return b, nil
}

func (l *Ledger) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	_, err := os.Stat(l.pathFor(id))
	return err == nil
}

func (l *Ledger) pathFor(id cid.Cid) string {
	s := id.String()
	if len(s) < 2 {
		return filepath.Join(l.root, s)
	}
	return filepath.Join(l.root, s[:2], s)
}
