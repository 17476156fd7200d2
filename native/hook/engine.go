package hook

import (
	"fmt"
	"math/big"

	"tithe/core/events"
	"tithe/native/donation"
	"tithe/observability"
)

// FeeConfig exposes the configuration reads phase 1 depends on. The
// governance controller satisfies it.
type FeeConfig interface {
	PoolRate(poolID [32]byte) (uint32, error)
	IsPaused() (bool, error)
}

type pendingDonation struct {
	amount  *big.Int
	asset   [20]byte
	payer   [20]byte
	volume  *big.Int
	rateBps uint32
}

// Engine drives the two-phase donation flow for every swap the host pipeline
// routes through the hook. Phase 1 registers a ledger claim and parks it in
// the pending map; phase 2 reads-and-clears the entry, cancels the claim, and
// materializes the one real transfer to the recipient.
//
// The engine runs inside the host's single-threaded transaction scope: the
// two phases of one swap execute back-to-back with no other swap interleaved,
// so the pending map needs no locking. Entries are keyed by pool so
// concurrent pools within one deployment can never bleed into each other.
type Engine struct {
	ledger      Ledger
	config      FeeConfig
	emitter     events.Emitter
	recipient   [20]byte
	minDonation *big.Int
	pausePolicy PausePolicy
	pending     map[[32]byte]pendingDonation
}

// NewEngine constructs an engine forwarding donations to the fixed recipient.
// The recipient cannot change for the lifetime of the engine.
func NewEngine(ledger Ledger, config FeeConfig, recipient [20]byte) *Engine {
	return &Engine{
		ledger:      ledger,
		config:      config,
		emitter:     events.NoopEmitter{},
		recipient:   recipient,
		minDonation: big.NewInt(donation.DefaultMinDonation),
		pending:     make(map[[32]byte]pendingDonation),
	}
}

// SetEmitter configures the event emitter. Passing nil resets it to a no-op.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetMinDonation overrides the dust threshold. Nil or non-positive values
// restore the default.
func (e *Engine) SetMinDonation(min *big.Int) {
	if min == nil || min.Sign() <= 0 {
		e.minDonation = big.NewInt(donation.DefaultMinDonation)
		return
	}
	e.minDonation = new(big.Int).Set(min)
}

// SetPausePolicy selects the pause behaviour for phase 1.
func (e *Engine) SetPausePolicy(policy PausePolicy) {
	e.pausePolicy = policy
}

// Recipient returns the fixed donation destination.
func (e *Engine) Recipient() [20]byte { return e.recipient }

// PreSwap is the phase-1 callback. It returns the adjustment the pipeline
// must add to the trader's obligation; a zero adjustment means the swap
// proceeds untouched and phase 2 will be a no-op.
func (e *Engine) PreSwap(poolID [32]byte, params SwapParams, extraData []byte, blockCtx BlockContext) (Adjustment, error) {
	if e.ledger == nil {
		return Adjustment{}, errLedgerNotConfigured
	}
	if e.config == nil {
		return Adjustment{}, errConfigNotConfigured
	}
	if _, exists := e.pending[poolID]; exists {
		return Adjustment{}, ErrPendingNotEmpty
	}
	paused, err := e.config.IsPaused()
	if err != nil {
		return Adjustment{}, err
	}
	if paused {
		if e.pausePolicy == PauseAbort {
			return Adjustment{}, ErrPaused
		}
		observability.Donations().RecordSkipped("paused")
		return Adjustment{}, nil
	}
	rate, err := e.config.PoolRate(poolID)
	if err != nil {
		return Adjustment{}, err
	}
	if rate == 0 {
		return Adjustment{}, nil
	}
	volume := params.Magnitude()
	asset := params.InputAsset()
	fee, err := donation.Compute(volume, rate)
	if err != nil {
		return Adjustment{}, fmt.Errorf("hook: compute donation: %w", err)
	}
	if donation.BelowDust(fee, e.minDonation) {
		observability.Donations().RecordSkipped("dust")
		return Adjustment{}, nil
	}
	payer, err := DecodeAttribution(extraData)
	if err != nil {
		return Adjustment{}, err
	}
	if err := e.ledger.IssueClaim(asset, fee); err != nil {
		return Adjustment{}, fmt.Errorf("hook: issue claim: %w", err)
	}
	e.pending[poolID] = pendingDonation{
		amount:  fee,
		asset:   asset,
		payer:   payer,
		volume:  volume,
		rateBps: rate,
	}
	return Adjustment{Asset: asset, Amount: new(big.Int).Set(fee)}, nil
}

// PostSwap is the phase-2 callback, invoked by the pipeline after price-curve
// settlement has fixed real balances. The pending entry is cleared before
// anything else so a defensive re-invocation for the same swap can never
// replay a stale claim. The transfer below is the first and only point where
// real balance leaves the pool.
func (e *Engine) PostSwap(poolID [32]byte, params SwapParams, blockCtx BlockContext) error {
	entry, exists := e.pending[poolID]
	delete(e.pending, poolID)
	if !exists || entry.amount == nil || entry.amount.Sign() == 0 {
		return nil
	}
	if err := e.ledger.CancelClaim(entry.asset, entry.amount); err != nil {
		return fmt.Errorf("hook: cancel claim: %w", err)
	}
	if err := e.ledger.Transfer(entry.asset, e.recipient, entry.amount); err != nil {
		return fmt.Errorf("hook: transfer donation: %w", err)
	}
	e.emitter.Emit(events.DonationCollected{
		Payer:      entry.payer,
		PoolID:     poolID,
		Asset:      entry.asset,
		Amount:     new(big.Int).Set(entry.amount),
		SwapVolume: new(big.Int).Set(entry.volume),
		RateBps:    entry.rateBps,
		Recipient:  e.recipient,
		BlockTime:  blockCtx.Time,
	})
	observability.Donations().RecordCollected(entry.asset)
	return nil
}

// PendingFor reports the parked donation amount for a pool, zero when none.
// Exposed for the read-only observability surface.
func (e *Engine) PendingFor(poolID [32]byte) *big.Int {
	entry, exists := e.pending[poolID]
	if !exists || entry.amount == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(entry.amount)
}
