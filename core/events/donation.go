package events

import (
	"encoding/hex"
	"math/big"
	"strconv"
	"time"

	"tithe/core/types"
)

const (
	// TypeDonationCollected marks a swap whose donation was materialized and
	// forwarded to the recipient.
	TypeDonationCollected = "donation.collected"
)

// DonationCollected records the outcome of one completed donation for
// analytics pipelines. Exactly one record is emitted per qualifying swap,
// after the transfer to the recipient has succeeded.
type DonationCollected struct {
	Payer      [20]byte
	PoolID     [32]byte
	Asset      [20]byte
	Amount     *big.Int
	SwapVolume *big.Int
	RateBps    uint32
	Recipient  [20]byte
	BlockTime  time.Time
}

// EventType satisfies the events.Event interface.
func (DonationCollected) EventType() string { return TypeDonationCollected }

// Event converts the structured payload into a broadcastable event.
func (e DonationCollected) Event() *types.Event {
	attrs := map[string]string{}
	if !zeroBytes(e.Payer[:]) {
		attrs["payer"] = hex.EncodeToString(e.Payer[:])
	}
	attrs["pool"] = hex.EncodeToString(e.PoolID[:])
	attrs["asset"] = hex.EncodeToString(e.Asset[:])
	if e.Amount != nil {
		attrs["amountWei"] = e.Amount.String()
	}
	if e.SwapVolume != nil {
		attrs["volumeWei"] = e.SwapVolume.String()
	}
	if e.RateBps > 0 {
		attrs["rateBps"] = strconv.FormatUint(uint64(e.RateBps), 10)
	}
	if !zeroBytes(e.Recipient[:]) {
		attrs["recipient"] = hex.EncodeToString(e.Recipient[:])
	}
	if !e.BlockTime.IsZero() {
		attrs["blockTimeUnix"] = strconv.FormatInt(e.BlockTime.UTC().Unix(), 10)
	}
	return &types.Event{Type: TypeDonationCollected, Attributes: attrs}
}
