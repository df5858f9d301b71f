/*
Package storage defines the key layout token contracts use and typed
helpers over the raw host store.

Single-byte prefixes below 0x05 are reserved for ledger state shared by
the templates. Application keys are plain ASCII strings, so a storage
dump stays readable next to the reserved entries.
*/
package storage

import (
	"github.com/epicchainlabs/epicchain-contract-go/pkg/host"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/types"
)

// Reserved key prefixes.
const (
	// PrefixTotalSupply is the single-entry total supply counter.
	PrefixTotalSupply byte = 0x00
	// PrefixBalance keys fungible balances by account hash.
	PrefixBalance byte = 0x01
	// PrefixTokenMetadata keys token metadata by token id.
	PrefixTokenMetadata byte = 0x02
	// PrefixTokenOwner keys token ownership by token id.
	PrefixTokenOwner byte = 0x03
	// PrefixAccountToken is the account-to-token index, keyed by
	// account hash followed by token id.
	PrefixAccountToken byte = 0x04
)

// AppendPrefix returns the given key under the given prefix byte.
func AppendPrefix(prefix byte, key []byte) []byte {
	return append([]byte{prefix}, key...)
}

// TotalSupplyKey returns the key of the total supply counter.
func TotalSupplyKey() []byte {
	return []byte{PrefixTotalSupply}
}

// BalanceKey returns the balance key of the given account.
func BalanceKey(owner types.H160) []byte {
	return AppendPrefix(PrefixBalance, owner.Bytes())
}

// MetadataKey returns the metadata key of the given token.
func MetadataKey(tokenID []byte) []byte {
	return AppendPrefix(PrefixTokenMetadata, tokenID)
}

// OwnerKey returns the ownership key of the given token.
func OwnerKey(tokenID []byte) []byte {
	return AppendPrefix(PrefixTokenOwner, tokenID)
}

// AccountTokenKey returns the account-token index key for the given
// account and token.
func AccountTokenKey(owner types.H160, tokenID []byte) []byte {
	return append(AppendPrefix(PrefixAccountToken, owner.Bytes()), tokenID...)
}

// AccountTokensPrefix returns the index prefix covering every token of
// the given account.
func AccountTokensPrefix(owner types.H160) []byte {
	return AppendPrefix(PrefixAccountToken, owner.Bytes())
}

// GetInt reads an Int256 stored at the given key. A missing entry
// reads as zero. Unreadable state aborts the invocation, it means the
// contract's own data is corrupt.
func GetInt(s host.Storage, key []byte) types.Int256 {
	data, ok := s.Get(key)
	if !ok {
		return types.Int256Zero()
	}
	v, err := types.Int256FromBytes(data)
	if err != nil {
		host.Abortf("corrupt integer state: %s", err)
	}
	return v
}

// PutInt stores an Int256 at the given key in its minimal form.
func PutInt(s host.Storage, key []byte, v types.Int256) {
	s.Put(key, v.Bytes())
}

// GetH160 reads a script hash stored at the given key.
func GetH160(s host.Storage, key []byte) (types.H160, bool) {
	data, ok := s.Get(key)
	if !ok {
		return types.H160{}, false
	}
	h, err := types.H160DecodeBytes(data)
	if err != nil {
		host.Abortf("corrupt hash state: %s", err)
	}
	return h, true
}

// PutH160 stores a script hash at the given key.
func PutH160(s host.Storage, key []byte, h types.H160) {
	s.Put(key, h.Bytes())
}

// GetString reads a string stored at the given key.
func GetString(s host.Storage, key []byte) (string, bool) {
	data, ok := s.Get(key)
	if !ok {
		return "", false
	}
	return string(data), true
}

// GetBool reads a flag stored at the given key. A missing entry reads
// as false.
func GetBool(s host.Storage, key []byte) bool {
	data, ok := s.Get(key)
	return ok && len(data) == 1 && data[0] != 0
}

// PutBool stores a flag at the given key.
func PutBool(s host.Storage, key []byte, v bool) {
	b := byte(0)
	if v {
		b = 1
	}
	s.Put(key, []byte{b})
}
