package hook

// attributionWordLen is the fixed width of the attribution payload: one
// address left-padded to a 32-byte word, the host pipeline's canonical
// encoding for opaque extra data.
const attributionWordLen = 32

// DecodeAttribution extracts the trader address a donation is attributed to.
// The payload must be exactly one zero-padded address word; any other length
// or non-zero padding is rejected.
func DecodeAttribution(extraData []byte) ([20]byte, error) {
	var addr [20]byte
	if len(extraData) != attributionWordLen {
		return addr, ErrMalformedAttribution
	}
	for _, b := range extraData[:attributionWordLen-len(addr)] {
		if b != 0 {
			return addr, ErrMalformedAttribution
		}
	}
	copy(addr[:], extraData[attributionWordLen-len(addr):])
	if addr == ([20]byte{}) {
		return addr, ErrMalformedAttribution
	}
	return addr, nil
}

// EncodeAttribution builds the canonical attribution payload for an address.
func EncodeAttribution(addr [20]byte) []byte {
	buf := make([]byte, attributionWordLen)
	copy(buf[attributionWordLen-len(addr):], addr[:])
	return buf
}
