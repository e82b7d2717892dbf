// Package ledger defines the content-addressed record of minted seals.
//
// A ledger stores canonical seal renders keyed by their CID. Entries
// are immutable: a seal, once recorded, is never rewritten, matching
// the engine rule that "changing" a seal means minting a new one.
package ledger

import "github.com/ipfs/go-cid"

// Ledger is a minimal content-addressed store of canonical seal bytes.
//
// Contract:
// - Put MUST be idempotent.
// - Recorded entries MUST be immutable.
// - CIDs MUST be derived from the bytes written.
// - Get MUST return ErrNotFound when the CID is absent.
type Ledger interface {
	Put(canonical []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}
