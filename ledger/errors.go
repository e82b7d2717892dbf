package ledger

import "errors"

var (
	ErrNotFound    = errors.New("ledger: not found")
	ErrInvalidCID  = errors.New("ledger: invalid cid")
	ErrCIDMismatch = errors.New("ledger: cid mismatch")
	ErrImmutable   = errors.New("ledger: immutable entry mismatch")
	ErrNotASeal    = errors.New("ledger: bytes are not a canonical seal render")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
