package io

// GetVarIntSize returns the size in bytes of a var-int holding the
// given value in the 7-bit continuation-byte encoding.
func GetVarIntSize(value uint64) int {
	n := 1
	for value >= 0x80 {
		value >>= 7
		n++
	}
	return n
}

// GetVarBytesSize returns the encoded size of a length-prefixed byte
// slice.
func GetVarBytesSize(value []byte) int {
	return GetVarIntSize(uint64(len(value))) + len(value)
}

// GetVarStringSize returns the encoded size of a length-prefixed
// string.
func GetVarStringSize(value string) int {
	return GetVarIntSize(uint64(len(value))) + len(value)
}
