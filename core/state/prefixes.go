package state

var (
	poolConfigPrefix   = []byte("donation/pool/")
	governanceStateKey = []byte("donation/governance")
	pausedFlagKey      = []byte("donation/paused")
)

func poolConfigKey(poolID [32]byte) []byte {
	buf := make([]byte, len(poolConfigPrefix)+len(poolID))
	copy(buf, poolConfigPrefix)
	copy(buf[len(poolConfigPrefix):], poolID[:])
	return buf
}
