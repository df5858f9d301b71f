package types

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// H256Size is the length of an H256 in bytes.
const H256Size = 32

// H256 is a 32-byte hash identifying a block or a transaction.
type H256 [H256Size]byte

// H256DecodeString attempts to decode the given hex string into an H256.
func H256DecodeString(s string) (H256, error) {
	var h H256
	s = strings.TrimPrefix(s, "0x")
	if len(s) != H256Size*2 {
		return h, fmt.Errorf("expected string size of %d got %d", H256Size*2, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, err
	}
	return H256DecodeBytes(b)
}

// H256DecodeBytes attempts to decode the given bytes into an H256.
func H256DecodeBytes(b []byte) (h H256, err error) {
	if len(b) != H256Size {
		return h, fmt.Errorf("expected byte size of %d got %d", H256Size, len(b))
	}
	copy(h[:], b)
	return
}

// Bytes returns the byte slice representation of h.
func (h H256) Bytes() []byte {
	return h[:]
}

// String implements the fmt.Stringer interface.
func (h H256) String() string {
	return hex.EncodeToString(h[:])
}

// Equals returns true if both H256 values are the same.
func (h H256) Equals(other H256) bool {
	return h == other
}

// IsZero reports whether h is all zero.
func (h H256) IsZero() bool {
	return h == H256{}
}

// Compare performs three-way comparison of two H256 values.
func (h H256) Compare(other H256) int {
	return bytes.Compare(h[:], other[:])
}

// MarshalJSON implements the json.Marshaler interface.
func (h H256) MarshalJSON() ([]byte, error) {
	return []byte(`"0x` + h.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (h *H256) UnmarshalJSON(data []byte) (err error) {
	var js string
	if err = json.Unmarshal(data, &js); err != nil {
		return err
	}
	*h, err = H256DecodeString(js)
	return err
}
