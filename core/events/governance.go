package events

import (
	"encoding/hex"
	"strconv"
	"time"

	"tithe/core/types"
)

const (
	// TypePoolFeeUpdated marks a per-pool donation rate change.
	TypePoolFeeUpdated = "donation.pool_fee_updated"
	// TypeManagerUpdateInitiated marks the start of a timelocked manager handover.
	TypeManagerUpdateInitiated = "donation.manager_update_initiated"
	// TypeManagerUpdateCompleted marks the promotion of a pending manager.
	TypeManagerUpdateCompleted = "donation.manager_update_completed"
	// TypePauseChanged marks a guardian pause or unpause.
	TypePauseChanged = "donation.pause_changed"
)

// PoolFeeUpdated records a successful rate write for one pool.
type PoolFeeUpdated struct {
	PoolID  [32]byte
	RateBps uint32
	Height  uint64
	Manager [20]byte
}

// EventType satisfies the events.Event interface.
func (PoolFeeUpdated) EventType() string { return TypePoolFeeUpdated }

// Event converts the structured payload into a broadcastable event.
func (e PoolFeeUpdated) Event() *types.Event {
	attrs := map[string]string{
		"pool":    hex.EncodeToString(e.PoolID[:]),
		"rateBps": strconv.FormatUint(uint64(e.RateBps), 10),
		"height":  strconv.FormatUint(e.Height, 10),
	}
	if !zeroBytes(e.Manager[:]) {
		attrs["manager"] = hex.EncodeToString(e.Manager[:])
	}
	return &types.Event{Type: TypePoolFeeUpdated, Attributes: attrs}
}

// ManagerUpdateInitiated records a new pending manager and the time the
// handover becomes completable.
type ManagerUpdateInitiated struct {
	Current     [20]byte
	Candidate   [20]byte
	EffectiveAt time.Time
}

// EventType satisfies the events.Event interface.
func (ManagerUpdateInitiated) EventType() string { return TypeManagerUpdateInitiated }

// Event converts the structured payload into a broadcastable event.
func (e ManagerUpdateInitiated) Event() *types.Event {
	attrs := map[string]string{
		"current":   hex.EncodeToString(e.Current[:]),
		"candidate": hex.EncodeToString(e.Candidate[:]),
	}
	if !e.EffectiveAt.IsZero() {
		attrs["effectiveAtUnix"] = strconv.FormatInt(e.EffectiveAt.UTC().Unix(), 10)
	}
	return &types.Event{Type: TypeManagerUpdateInitiated, Attributes: attrs}
}

// ManagerUpdateCompleted records the promotion of the pending manager.
type ManagerUpdateCompleted struct {
	Previous [20]byte
	Manager  [20]byte
}

// EventType satisfies the events.Event interface.
func (ManagerUpdateCompleted) EventType() string { return TypeManagerUpdateCompleted }

// Event converts the structured payload into a broadcastable event.
func (e ManagerUpdateCompleted) Event() *types.Event {
	return &types.Event{Type: TypeManagerUpdateCompleted, Attributes: map[string]string{
		"previous": hex.EncodeToString(e.Previous[:]),
		"manager":  hex.EncodeToString(e.Manager[:]),
	}}
}

// PauseChanged records a guardian flip of the emergency flag.
type PauseChanged struct {
	Paused   bool
	Guardian [20]byte
}

// EventType satisfies the events.Event interface.
func (PauseChanged) EventType() string { return TypePauseChanged }

// Event converts the structured payload into a broadcastable event.
func (e PauseChanged) Event() *types.Event {
	attrs := map[string]string{
		"paused": strconv.FormatBool(e.Paused),
	}
	if !zeroBytes(e.Guardian[:]) {
		attrs["guardian"] = hex.EncodeToString(e.Guardian[:])
	}
	return &types.Event{Type: TypePauseChanged, Attributes: attrs}
}
