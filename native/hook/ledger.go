package hook

import "math/big"

// Ledger is the host's transient per-transaction obligation record. Claims
// registered through it must net to zero against the pipeline's adjustments
// before the enclosing transaction may close; Transfer is the only call that
// moves real balance.
type Ledger interface {
	// IssueClaim registers that the hook is owed amount units of asset from
	// the pool's shared balance.
	IssueClaim(asset [20]byte, amount *big.Int) error
	// CancelClaim removes a previously issued claim.
	CancelClaim(asset [20]byte, amount *big.Int) error
	// Transfer moves real balance from the pool's shared balance to the
	// destination.
	Transfer(asset [20]byte, destination [20]byte, amount *big.Int) error
}
