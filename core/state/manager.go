package state

import (
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"tithe/storage"
)

// Manager provides typed access to the hook's persistent records over a raw
// key-value backend. Keys are hashed so record layout does not leak backend
// key structure to neighbouring modules sharing the same store.
type Manager struct {
	db storage.Database
}

// NewManager creates a state manager operating on the provided database.
func NewManager(db storage.Database) *Manager {
	return &Manager{db: db}
}

func kvKey(key []byte) []byte {
	return ethcrypto.Keccak256(key)
}

func (m *Manager) get(key []byte, out interface{}) (bool, error) {
	raw, ok, err := m.db.Get(kvKey(key))
	if err != nil || !ok {
		return ok, err
	}
	if err := rlp.DecodeBytes(raw, out); err != nil {
		return false, fmt.Errorf("state: decode record %q: %w", key, err)
	}
	return true, nil
}

func (m *Manager) put(key []byte, value interface{}) error {
	encoded, err := rlp.EncodeToBytes(value)
	if err != nil {
		return fmt.Errorf("state: encode record %q: %w", key, err)
	}
	return m.db.Put(kvKey(key), encoded)
}
