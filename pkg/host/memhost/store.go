package memhost

import (
	"bytes"
	"sort"

	"github.com/epicchainlabs/epicchain-contract-go/pkg/host"
)

// memStore is a plain map with copy-on-read snapshots. Keys are the
// raw storage keys, kept as strings for map use.
type memStore struct {
	mem map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{mem: make(map[string][]byte)}
}

func (s *memStore) get(key []byte) ([]byte, bool) {
	v, ok := s.mem[string(key)]
	if !ok {
		return nil, false
	}
	return bytes.Clone(v), true
}

func (s *memStore) put(key, value []byte) {
	s.mem[string(key)] = bytes.Clone(value)
}

func (s *memStore) delete(key []byte) {
	delete(s.mem, string(key))
}

func (s *memStore) snapshot() map[string][]byte {
	snap := make(map[string][]byte, len(s.mem))
	for k, v := range s.mem {
		snap[k] = v
	}
	return snap
}

func (s *memStore) restore(snap map[string][]byte) {
	s.mem = snap
}

// seek returns the entries matching the given prefix, ordered by key.
func (s *memStore) seek(prefix []byte, backwards bool) []kv {
	var res []kv
	for k, v := range s.mem {
		if bytes.HasPrefix([]byte(k), prefix) {
			res = append(res, kv{key: []byte(k), value: bytes.Clone(v)})
		}
	}
	sort.Slice(res, func(i, j int) bool {
		c := bytes.Compare(res[i].key, res[j].key)
		if backwards {
			return c > 0
		}
		return c < 0
	})
	return res
}

type kv struct {
	key   []byte
	value []byte
}

// iterator walks a snapshot of Find results, so mutations made while
// iterating are not observed.
type iterator struct {
	entries []kv
	pos     int
	flags   host.FindFlags
	trim    int
}

// Next implements the host.Iterator interface.
func (it *iterator) Next() bool {
	if it.pos >= len(it.entries) {
		return false
	}
	it.pos++
	return true
}

// Key implements the host.Iterator interface.
func (it *iterator) Key() []byte {
	if it.flags&host.FindValuesOnly != 0 {
		return nil
	}
	return it.entries[it.pos-1].key[it.trim:]
}

// Value implements the host.Iterator interface.
func (it *iterator) Value() []byte {
	if it.flags&host.FindKeysOnly != 0 {
		return nil
	}
	return it.entries[it.pos-1].value
}

// hostStorage adapts Host to the host.Storage interface.
type hostStorage Host

// Get implements the host.Storage interface.
func (h *hostStorage) Get(key []byte) ([]byte, bool) {
	return h.store.get(key)
}

// Put implements the host.Storage interface.
func (h *hostStorage) Put(key, value []byte) {
	h.logger.Debug("storage put",
		zapKey(key), zapVal(value))
	h.store.put(key, value)
}

// Delete implements the host.Storage interface.
func (h *hostStorage) Delete(key []byte) {
	h.logger.Debug("storage delete", zapKey(key))
	h.store.delete(key)
}

// Find implements the host.Storage interface.
func (h *hostStorage) Find(prefix []byte, flags host.FindFlags) host.Iterator {
	it := &iterator{
		entries: h.store.seek(prefix, flags&host.FindBackwards != 0),
		flags:   flags,
	}
	if flags&host.FindRemovePrefix != 0 {
		it.trim = len(prefix)
	}
	return it
}
