package donation

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
)

// RateDenominator fixes the granularity of donation rates: one rate unit is
// 0.0001% of swap volume.
const RateDenominator = 1_000_000

// MaxRateBps caps every per-pool rate at 1% of swap volume.
const MaxRateBps = 10_000

// DefaultMinDonation is the dust threshold applied when a deployment does not
// configure its own: any positive fee qualifies.
const DefaultMinDonation = 1

var (
	// ErrVolumeNegative indicates the caller passed a negative swap volume.
	ErrVolumeNegative = errors.New("donation: volume must not be negative")
	// ErrVolumeRange indicates the swap volume does not fit the host ledger's
	// 256-bit amount width.
	ErrVolumeRange = errors.New("donation: volume exceeds 256-bit range")
	// ErrRateRange indicates a rate above MaxRateBps.
	ErrRateRange = errors.New("donation: rate exceeds maximum")
)

var rateDenom = big.NewInt(RateDenominator)

// Compute returns floor(volume * rateBps / RateDenominator). Rounding is
// always toward zero so the trader is never over-charged. The product of a
// 256-bit volume and a rate does not fit 256 bits, so the intermediate is
// arbitrary precision; the volume itself must fit the host ledger's amount
// width and is rejected otherwise.
func Compute(volume *big.Int, rateBps uint32) (*big.Int, error) {
	if volume == nil || volume.Sign() == 0 || rateBps == 0 {
		return big.NewInt(0), nil
	}
	if volume.Sign() < 0 {
		return nil, ErrVolumeNegative
	}
	if _, overflow := uint256.FromBig(volume); overflow {
		return nil, ErrVolumeRange
	}
	if rateBps > MaxRateBps {
		return nil, ErrRateRange
	}
	fee := new(big.Int).Mul(volume, big.NewInt(int64(rateBps)))
	return fee.Quo(fee, rateDenom), nil
}

// BelowDust reports whether the computed fee falls under the configured dust
// threshold and should be skipped entirely: no claim, no transfer, no event.
func BelowDust(fee *big.Int, minDonation *big.Int) bool {
	if fee == nil || fee.Sign() <= 0 {
		return true
	}
	if minDonation == nil || minDonation.Sign() <= 0 {
		return false
	}
	return fee.Cmp(minDonation) < 0
}
