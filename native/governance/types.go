package governance

import "time"

// PoolConfig carries the per-pool donation settings. A record is created on
// the first rate write for a pool and is never deleted afterwards.
type PoolConfig struct {
	RateBps          uint32
	LastUpdateHeight uint64
}

// State captures the global authority configuration: the active manager, the
// pause guardian, and an optional pending, timelocked manager successor.
// Initiating a new handover overwrites any pending one; requests are never
// queued.
type State struct {
	Manager            [20]byte
	Guardian           [20]byte
	PendingManager     [20]byte
	PendingEffectiveAt time.Time
	HasPending         bool
}

// PendingUpdate is the externally readable view of an in-flight manager
// handover.
type PendingUpdate struct {
	Candidate   [20]byte
	EffectiveAt time.Time
}
