package state

import (
	"tithe/native/governance"
)

type storedPoolConfig struct {
	RateBps          uint32
	LastUpdateHeight uint64
}

// PoolFeeConfig loads the donation configuration for one pool. The boolean
// reports whether a record exists; pools without a record default to rate
// zero.
func (m *Manager) PoolFeeConfig(poolID [32]byte) (governance.PoolConfig, bool, error) {
	var stored storedPoolConfig
	ok, err := m.get(poolConfigKey(poolID), &stored)
	if err != nil || !ok {
		return governance.PoolConfig{}, false, err
	}
	return governance.PoolConfig{
		RateBps:          stored.RateBps,
		LastUpdateHeight: stored.LastUpdateHeight,
	}, true, nil
}

// PutPoolFeeConfig persists the donation configuration for one pool.
func (m *Manager) PutPoolFeeConfig(poolID [32]byte, cfg governance.PoolConfig) error {
	return m.put(poolConfigKey(poolID), storedPoolConfig{
		RateBps:          cfg.RateBps,
		LastUpdateHeight: cfg.LastUpdateHeight,
	})
}
