package hook

import (
	"math/big"
	"time"
)

// SwapParams mirrors the parameters the host pipeline hands to both hook
// phases. AmountSpecified is signed: a negative value fixes the input amount
// (exact input), a positive value fixes the output amount (exact output).
type SwapParams struct {
	ZeroForOne      bool
	AmountSpecified *big.Int
	Asset0          [20]byte
	Asset1          [20]byte
}

// ExactInput reports whether the trader fixed the input side of the swap.
func (p SwapParams) ExactInput() bool {
	return p.AmountSpecified != nil && p.AmountSpecified.Sign() < 0
}

// InputAsset returns the asset the trader pays into the pool. The donation is
// always denominated in this asset, fixed as soon as the direction is known.
func (p SwapParams) InputAsset() [20]byte {
	if p.ZeroForOne {
		return p.Asset0
	}
	return p.Asset1
}

// Magnitude returns the absolute specified amount, never nil.
func (p SwapParams) Magnitude() *big.Int {
	if p.AmountSpecified == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Abs(p.AmountSpecified)
}

// BlockContext carries the host's ordering counter and clock for the
// enclosing transaction. The hook never consults a clock of its own.
type BlockContext struct {
	Height uint64
	Time   time.Time
}

// Adjustment is the phase-1 result handed back to the pipeline: the trader's
// total obligation grows by Amount of Asset. The zero value means the swap
// proceeds untouched.
type Adjustment struct {
	Asset  [20]byte
	Amount *big.Int
}

// IsZero reports whether the adjustment leaves the swap untouched.
func (a Adjustment) IsZero() bool {
	return a.Amount == nil || a.Amount.Sign() == 0
}

// PausePolicy selects how phase 1 reacts while the emergency flag is set.
type PausePolicy uint8

const (
	// PauseAbort fails the enclosing swap while paused (fail closed).
	PauseAbort PausePolicy = iota
	// PausePassthrough lets swaps proceed with no donation while paused.
	PausePassthrough
)
