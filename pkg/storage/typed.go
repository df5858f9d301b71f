package storage

import (
	"github.com/epicchainlabs/epicchain-contract-go/pkg/host"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/io"
)

// Item is a single typed value at a fixed key, marshaled through the
// binary codec.
type Item[T any, PT interface {
	*T
	io.Serializable
}] struct {
	store host.Storage
	key   []byte
}

// NewItem returns an Item over the given store and key.
func NewItem[T any, PT interface {
	*T
	io.Serializable
}](s host.Storage, key []byte) Item[T, PT] {
	return Item[T, PT]{store: s, key: key}
}

// Get reads the value. The second result is false when the key is not
// set. Unreadable state aborts the invocation.
func (i Item[T, PT]) Get() (T, bool) {
	var v T
	data, ok := i.store.Get(i.key)
	if !ok {
		return v, false
	}
	if err := io.FromBytes(data, PT(&v)); err != nil {
		host.Abortf("corrupt state at item key: %s", err)
	}
	return v, true
}

// Put stores the value.
func (i Item[T, PT]) Put(v *T) {
	data, err := io.ToBytes(PT(v))
	if err != nil {
		host.Abortf("unencodable value: %s", err)
	}
	i.store.Put(i.key, data)
}

// Delete removes the value.
func (i Item[T, PT]) Delete() {
	i.store.Delete(i.key)
}

// Map is a typed key-value sub-namespace under a common prefix.
type Map[T any, PT interface {
	*T
	io.Serializable
}] struct {
	store  host.Storage
	prefix []byte
}

// NewMap returns a Map over the given store and prefix.
func NewMap[T any, PT interface {
	*T
	io.Serializable
}](s host.Storage, prefix []byte) Map[T, PT] {
	return Map[T, PT]{store: s, prefix: prefix}
}

func (m Map[T, PT]) storageKey(key []byte) []byte {
	return append(append([]byte{}, m.prefix...), key...)
}

// Get reads the value stored under the given key.
func (m Map[T, PT]) Get(key []byte) (T, bool) {
	var v T
	data, ok := m.store.Get(m.storageKey(key))
	if !ok {
		return v, false
	}
	if err := io.FromBytes(data, PT(&v)); err != nil {
		host.Abortf("corrupt state at map key: %s", err)
	}
	return v, true
}

// Put stores the value under the given key.
func (m Map[T, PT]) Put(key []byte, v *T) {
	data, err := io.ToBytes(PT(v))
	if err != nil {
		host.Abortf("unencodable value: %s", err)
	}
	m.store.Put(m.storageKey(key), data)
}

// Delete removes the value stored under the given key.
func (m Map[T, PT]) Delete(key []byte) {
	m.store.Delete(m.storageKey(key))
}

// FindPage collects up to limit keys under the given prefix, with the
// prefix removed, starting after the given continuation key. A
// non-positive limit means no limit. The second result is the
// continuation key for the next page, or nil when the listing is
// complete; it is the last key of the page as returned, so callers
// pass it back verbatim.
func FindPage(s host.Storage, prefix, after []byte, limit int) ([][]byte, []byte) {
	if limit <= 0 {
		limit = -1
	}
	it := s.Find(prefix, host.FindKeysOnly|host.FindRemovePrefix)
	var (
		keys [][]byte
		more bool
	)
	for it.Next() {
		k := it.Key()
		if after != nil && string(k) <= string(after) {
			continue
		}
		if len(keys) == limit {
			more = true
			break
		}
		keys = append(keys, k)
	}
	if !more {
		return keys, nil
	}
	return keys, keys[len(keys)-1]
}
