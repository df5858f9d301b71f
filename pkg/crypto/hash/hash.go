// Package hash contains wrappers for the hash functions used
// throughout the SDK.
package hash

import (
	"crypto/sha256"

	"github.com/epicchainlabs/epicchain-contract-go/pkg/types"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // it is the hash the chain uses
)

// Sha256 hashes the incoming byte slice using the sha256 algorithm.
func Sha256(data []byte) types.H256 {
	return types.H256(sha256.Sum256(data))
}

// DoubleSha256 performs sha256 twice on the given data.
func DoubleSha256(data []byte) types.H256 {
	h := sha256.Sum256(data)
	return types.H256(sha256.Sum256(h[:]))
}

// RipeMD160 performs the RIPEMD160 hash algorithm on the given data.
func RipeMD160(data []byte) types.H160 {
	var h types.H160
	hasher := ripemd160.New()
	hasher.Write(data)
	copy(h[:], hasher.Sum(nil))
	return h
}

// Hash160 performs sha256 and then ripemd160 on the given data. It is
// the hash that turns a verification script into a script hash.
func Hash160(data []byte) types.H160 {
	h := sha256.Sum256(data)
	return RipeMD160(h[:])
}

// Checksum returns the first 4 bytes of the double sha256 hash of the
// given data.
func Checksum(data []byte) []byte {
	h := DoubleSha256(data)
	return h.Bytes()[:4]
}
