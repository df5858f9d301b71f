package types

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// H160Size is the length of an H160 in bytes.
const H160Size = 20

// H160 is a 20-byte script hash identifying an account or a contract.
// The all-zero value is the null address used in Transfer events to
// denote mint and burn.
type H160 [H160Size]byte

// H160DecodeString attempts to decode the given hex string into an H160.
func H160DecodeString(s string) (H160, error) {
	var h H160
	s = strings.TrimPrefix(s, "0x")
	if len(s) != H160Size*2 {
		return h, fmt.Errorf("expected string size of %d got %d", H160Size*2, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, err
	}
	return H160DecodeBytes(b)
}

// H160DecodeBytes attempts to decode the given bytes into an H160.
func H160DecodeBytes(b []byte) (h H160, err error) {
	if len(b) != H160Size {
		return h, fmt.Errorf("expected byte size of %d got %d", H160Size, len(b))
	}
	copy(h[:], b)
	return
}

// Bytes returns the byte slice representation of h.
func (h H160) Bytes() []byte {
	return h[:]
}

// String implements the fmt.Stringer interface.
func (h H160) String() string {
	return hex.EncodeToString(h[:])
}

// Equals returns true if both H160 values are the same.
func (h H160) Equals(other H160) bool {
	return h == other
}

// IsZero reports whether h is the null address.
func (h H160) IsZero() bool {
	return h == H160{}
}

// Compare performs three-way comparison of two H160 values.
func (h H160) Compare(other H160) int {
	return bytes.Compare(h[:], other[:])
}

// MarshalJSON implements the json.Marshaler interface.
func (h H160) MarshalJSON() ([]byte, error) {
	return []byte(`"0x` + h.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (h *H160) UnmarshalJSON(data []byte) (err error) {
	var js string
	if err = json.Unmarshal(data, &js); err != nil {
		return err
	}
	*h, err = H160DecodeString(js)
	return err
}
