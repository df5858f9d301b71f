// Package address implements the base58check address form of an H160
// script hash.
package address

import (
	"bytes"
	"errors"

	"github.com/epicchainlabs/epicchain-contract-go/pkg/crypto/hash"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/types"
	"github.com/mr-tron/base58"
)

// Prefix is the address version byte prepended to the script hash
// before base58check encoding.
const Prefix = 0x35

// Encode returns the address form of the given script hash.
func Encode(h types.H160) string {
	b := append([]byte{Prefix}, h.Bytes()...)
	b = append(b, hash.Checksum(b)...)
	return base58.Encode(b)
}

// Decode attempts to decode the given address string into a script
// hash.
func Decode(s string) (types.H160, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return types.H160{}, err
	}
	if len(b) != 1+types.H160Size+4 {
		return types.H160{}, errors.New("invalid address length")
	}
	if b[0] != Prefix {
		return types.H160{}, errors.New("invalid address prefix")
	}
	if !bytes.Equal(hash.Checksum(b[:21]), b[21:]) {
		return types.H160{}, errors.New("invalid address checksum")
	}
	return types.H160DecodeBytes(b[1:21])
}
