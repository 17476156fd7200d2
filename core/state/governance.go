package state

import (
	"time"

	"tithe/native/governance"
)

type storedGovernanceState struct {
	Manager                [20]byte
	Guardian               [20]byte
	PendingManager         [20]byte
	PendingEffectiveAtUnix uint64
	HasPending             bool
}

type storedPausedFlag struct {
	Paused bool
}

// GovernanceState loads the global authority record. The boolean reports
// whether the record was ever bootstrapped.
func (m *Manager) GovernanceState() (governance.State, bool, error) {
	var stored storedGovernanceState
	ok, err := m.get(governanceStateKey, &stored)
	if err != nil || !ok {
		return governance.State{}, false, err
	}
	st := governance.State{
		Manager:        stored.Manager,
		Guardian:       stored.Guardian,
		PendingManager: stored.PendingManager,
		HasPending:     stored.HasPending,
	}
	if stored.HasPending && stored.PendingEffectiveAtUnix > 0 {
		st.PendingEffectiveAt = time.Unix(int64(stored.PendingEffectiveAtUnix), 0).UTC()
	}
	return st, true, nil
}

// PutGovernanceState persists the global authority record.
func (m *Manager) PutGovernanceState(st governance.State) error {
	stored := storedGovernanceState{
		Manager:        st.Manager,
		Guardian:       st.Guardian,
		PendingManager: st.PendingManager,
		HasPending:     st.HasPending,
	}
	if st.HasPending && !st.PendingEffectiveAt.IsZero() {
		stored.PendingEffectiveAtUnix = uint64(st.PendingEffectiveAt.UTC().Unix())
	}
	return m.put(governanceStateKey, stored)
}

// Paused reports the emergency flag; absent records default to unpaused.
func (m *Manager) Paused() (bool, error) {
	var stored storedPausedFlag
	ok, err := m.get(pausedFlagKey, &stored)
	if err != nil || !ok {
		return false, err
	}
	return stored.Paused, nil
}

// SetPausedFlag persists the emergency flag.
func (m *Manager) SetPausedFlag(paused bool) error {
	return m.put(pausedFlagKey, storedPausedFlag{Paused: paused})
}
