/*
Package stackitem implements the host VM stack item sum type. Every
value crossing the notification or cross-contract call boundary is one
of these items: Null, Boolean, Integer, ByteString, Buffer, Array, Map
or Interop.
*/
package stackitem

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/epicchainlabs/epicchain-contract-go/pkg/types"
)

// MaxKeySize is the maximum size of a map key.
const MaxKeySize = 64

var (
	// ErrInvalidConversion is returned upon an attempt to make an
	// incorrect conversion between item types.
	ErrInvalidConversion = errors.New("invalid conversion")
	// ErrTooBig is returned when an item exceeds a size constraint,
	// like the maximum length of a map key.
	ErrTooBig = errors.New("too big")
)

// Item represents the value that is pushed on the stack.
type Item interface {
	fmt.Stringer
	// Value returns the underlying Go value.
	Value() any
	// Dup duplicates the current Item.
	Dup() Item
	// TryBool converts the Item to a boolean value.
	TryBool() (bool, error)
	// TryBytes converts the Item to a byte slice. If the underlying
	// type is a byte slice, it is returned as is without copying.
	TryBytes() ([]byte, error)
	// TryInteger converts the Item to an integer.
	TryInteger() (types.Int256, error)
	// Equals checks if two Items are equal.
	Equals(s Item) bool
	// Type returns the stack item type.
	Type() Type
}

// Make tries to make an appropriate stack item from the provided value.
// It will panic if it's not possible.
func Make(v any) Item {
	switch val := v.(type) {
	case int:
		return NewInteger(types.NewInt256(int64(val)))
	case int64:
		return NewInteger(types.NewInt256(val))
	case uint32:
		return NewInteger(types.NewInt256(int64(val)))
	case uint64:
		return NewInteger(types.Int256FromUint64(val))
	case types.Int256:
		return NewInteger(val)
	case []byte:
		return NewByteArray(val)
	case string:
		return NewByteArray([]byte(val))
	case bool:
		return NewBool(val)
	case types.H160:
		return NewByteArray(val.Bytes())
	case types.H256:
		return NewByteArray(val.Bytes())
	case []Item:
		return NewArray(val)
	case Item:
		return val
	case nil:
		return Null{}
	default:
		panic(fmt.Sprintf("invalid stack item type: %v (%T)", val, val))
	}
}

// Null represents the null value on the stack.
type Null struct{}

// String implements the fmt.Stringer interface.
func (i Null) String() string { return "Null" }

// Value implements the Item interface.
func (i Null) Value() any { return nil }

// Dup implements the Item interface.
func (i Null) Dup() Item { return i }

// TryBool implements the Item interface.
func (i Null) TryBool() (bool, error) { return false, nil }

// TryBytes implements the Item interface.
func (i Null) TryBytes() ([]byte, error) {
	return nil, mkInvConversion(i, ByteArrayT)
}

// TryInteger implements the Item interface.
func (i Null) TryInteger() (types.Int256, error) {
	return types.Int256{}, mkInvConversion(i, IntegerT)
}

// Equals implements the Item interface.
func (i Null) Equals(s Item) bool {
	_, ok := s.(Null)
	return ok
}

// Type implements the Item interface.
func (i Null) Type() Type { return AnyT }

// Bool represents a boolean on the stack.
type Bool bool

// NewBool returns a new Bool object.
func NewBool(val bool) Bool { return Bool(val) }

// String implements the fmt.Stringer interface.
func (i Bool) String() string { return "Boolean" }

// Value implements the Item interface.
func (i Bool) Value() any { return bool(i) }

// Dup implements the Item interface.
func (i Bool) Dup() Item { return i }

// TryBool implements the Item interface.
func (i Bool) TryBool() (bool, error) { return bool(i), nil }

// TryBytes implements the Item interface.
func (i Bool) TryBytes() ([]byte, error) {
	if i {
		return []byte{1}, nil
	}
	return []byte{0}, nil
}

// TryInteger implements the Item interface.
func (i Bool) TryInteger() (types.Int256, error) {
	if i {
		return types.Int256One(), nil
	}
	return types.Int256Zero(), nil
}

// Equals implements the Item interface.
func (i Bool) Equals(s Item) bool {
	if b, ok := s.(Bool); ok {
		return i == b
	}
	return false
}

// Type implements the Item interface.
func (i Bool) Type() Type { return BooleanT }

// Integer represents an integer on the stack.
type Integer types.Int256

// NewInteger returns a new Integer object.
func NewInteger(val types.Int256) Integer { return Integer(val) }

// String implements the fmt.Stringer interface.
func (i Integer) String() string { return "Integer" }

// Value implements the Item interface.
func (i Integer) Value() any { return types.Int256(i) }

// Dup implements the Item interface.
func (i Integer) Dup() Item { return i }

// TryBool implements the Item interface.
func (i Integer) TryBool() (bool, error) {
	return !types.Int256(i).IsZero(), nil
}

// TryBytes implements the Item interface.
func (i Integer) TryBytes() ([]byte, error) {
	return types.Int256(i).Bytes(), nil
}

// TryInteger implements the Item interface.
func (i Integer) TryInteger() (types.Int256, error) {
	return types.Int256(i), nil
}

// Equals implements the Item interface.
func (i Integer) Equals(s Item) bool {
	if v, ok := s.(Integer); ok {
		return types.Int256(i).Equals(types.Int256(v))
	}
	return false
}

// Type implements the Item interface.
func (i Integer) Type() Type { return IntegerT }

// ByteArray represents an immutable byte string on the stack.
type ByteArray []byte

// NewByteArray returns a new ByteArray object.
func NewByteArray(b []byte) ByteArray { return b }

// String implements the fmt.Stringer interface.
func (i ByteArray) String() string { return "ByteString" }

// Value implements the Item interface.
func (i ByteArray) Value() any { return []byte(i) }

// Dup implements the Item interface.
func (i ByteArray) Dup() Item { return i }

// TryBool implements the Item interface. Any non-zero byte makes the
// value true.
func (i ByteArray) TryBool() (bool, error) {
	for _, b := range i {
		if b != 0 {
			return true, nil
		}
	}
	return false, nil
}

// TryBytes implements the Item interface.
func (i ByteArray) TryBytes() ([]byte, error) { return i, nil }

// TryInteger implements the Item interface.
func (i ByteArray) TryInteger() (types.Int256, error) {
	v, err := types.Int256FromBytes(i)
	if err != nil {
		return types.Int256{}, fmt.Errorf("%w: %v", ErrInvalidConversion, err)
	}
	return v, nil
}

// Equals implements the Item interface.
func (i ByteArray) Equals(s Item) bool {
	if s == nil {
		return false
	}
	if v, ok := s.(ByteArray); ok {
		return bytes.Equal(i, v)
	}
	return false
}

// Type implements the Item interface.
func (i ByteArray) Type() Type { return ByteArrayT }

// Buffer represents a mutable byte buffer on the stack.
type Buffer []byte

// NewBuffer returns a new Buffer object.
func NewBuffer(b []byte) Buffer { return b }

// String implements the fmt.Stringer interface.
func (i Buffer) String() string { return "Buffer" }

// Value implements the Item interface.
func (i Buffer) Value() any { return []byte(i) }

// Dup implements the Item interface.
func (i Buffer) Dup() Item { return i }

// TryBool implements the Item interface.
func (i Buffer) TryBool() (bool, error) { return true, nil }

// TryBytes implements the Item interface.
func (i Buffer) TryBytes() ([]byte, error) { return i, nil }

// TryInteger implements the Item interface.
func (i Buffer) TryInteger() (types.Int256, error) {
	return types.Int256{}, mkInvConversion(i, IntegerT)
}

// Equals implements the Item interface. Buffers are equal only when
// they are the same buffer.
func (i Buffer) Equals(s Item) bool {
	if v, ok := s.(Buffer); ok {
		return len(i) == len(v) && (len(i) == 0 || &i[0] == &v[0])
	}
	return false
}

// Type implements the Item interface.
func (i Buffer) Type() Type { return BufferT }

// Array represents an ordered sequence of items on the stack.
type Array struct {
	value []Item
}

// NewArray returns a new Array object.
func NewArray(items []Item) *Array {
	return &Array{value: items}
}

// String implements the fmt.Stringer interface.
func (i *Array) String() string { return "Array" }

// Value implements the Item interface.
func (i *Array) Value() any { return i.value }

// Dup implements the Item interface.
func (i *Array) Dup() Item { return i }

// Len returns the length of the Array value.
func (i *Array) Len() int { return len(i.value) }

// Append adds an Item to the end of the Array value.
func (i *Array) Append(item Item) {
	i.value = append(i.value, item)
}

// TryBool implements the Item interface.
func (i *Array) TryBool() (bool, error) { return true, nil }

// TryBytes implements the Item interface.
func (i *Array) TryBytes() ([]byte, error) {
	return nil, mkInvConversion(i, ByteArrayT)
}

// TryInteger implements the Item interface.
func (i *Array) TryInteger() (types.Int256, error) {
	return types.Int256{}, mkInvConversion(i, IntegerT)
}

// Equals implements the Item interface. Arrays are equal only when
// they are the same array.
func (i *Array) Equals(s Item) bool {
	if v, ok := s.(*Array); ok {
		return i == v
	}
	return false
}

// Type implements the Item interface.
func (i *Array) Type() Type { return ArrayT }

// MapElement is a key-value pair of a Map. Keys are byte strings of at
// most MaxKeySize bytes.
type MapElement struct {
	Key   []byte
	Value Item
}

// Map represents a mapping from byte string keys to items. Insertion
// order is preserved.
type Map struct {
	value []MapElement
}

// NewMap returns a new Map object.
func NewMap() *Map {
	return &Map{}
}

// String implements the fmt.Stringer interface.
func (i *Map) String() string { return "Map" }

// Value implements the Item interface.
func (i *Map) Value() any { return i.value }

// Dup implements the Item interface.
func (i *Map) Dup() Item { return i }

// Len returns the length of the Map value.
func (i *Map) Len() int { return len(i.value) }

// Index returns the index of the given key in the Map or -1.
func (i *Map) Index(key []byte) int {
	for k := range i.value {
		if bytes.Equal(i.value[k].Key, key) {
			return k
		}
	}
	return -1
}

// Get returns the value stored for the given key or nil.
func (i *Map) Get(key []byte) Item {
	if idx := i.Index(key); idx >= 0 {
		return i.value[idx].Value
	}
	return nil
}

// Put puts a value for the given key, replacing any previous one. It
// will panic for keys longer than MaxKeySize.
func (i *Map) Put(key []byte, value Item) {
	if len(key) > MaxKeySize {
		panic(fmt.Errorf("%w: map key", ErrTooBig))
	}
	if idx := i.Index(key); idx >= 0 {
		i.value[idx].Value = value
		return
	}
	i.value = append(i.value, MapElement{Key: key, Value: value})
}

// Drop removes the given key from the Map (if it's there).
func (i *Map) Drop(key []byte) {
	if idx := i.Index(key); idx >= 0 {
		i.value = append(i.value[:idx], i.value[idx+1:]...)
	}
}

// TryBool implements the Item interface.
func (i *Map) TryBool() (bool, error) { return true, nil }

// TryBytes implements the Item interface.
func (i *Map) TryBytes() ([]byte, error) {
	return nil, mkInvConversion(i, ByteArrayT)
}

// TryInteger implements the Item interface.
func (i *Map) TryInteger() (types.Int256, error) {
	return types.Int256{}, mkInvConversion(i, IntegerT)
}

// Equals implements the Item interface. Maps are equal only when they
// are the same map.
func (i *Map) Equals(s Item) bool {
	if v, ok := s.(*Map); ok {
		return i == v
	}
	return false
}

// Type implements the Item interface.
func (i *Map) Type() Type { return MapT }

// Interop represents an opaque host handle on the stack.
type Interop struct {
	value any
}

// NewInterop returns a new Interop object.
func NewInterop(v any) *Interop {
	return &Interop{value: v}
}

// String implements the fmt.Stringer interface.
func (i *Interop) String() string { return "Interop" }

// Value implements the Item interface.
func (i *Interop) Value() any { return i.value }

// Dup implements the Item interface.
func (i *Interop) Dup() Item { return i }

// TryBool implements the Item interface.
func (i *Interop) TryBool() (bool, error) { return true, nil }

// TryBytes implements the Item interface.
func (i *Interop) TryBytes() ([]byte, error) {
	return nil, mkInvConversion(i, ByteArrayT)
}

// TryInteger implements the Item interface.
func (i *Interop) TryInteger() (types.Int256, error) {
	return types.Int256{}, mkInvConversion(i, IntegerT)
}

// Equals implements the Item interface.
func (i *Interop) Equals(s Item) bool {
	if v, ok := s.(*Interop); ok {
		return i.value == v.value
	}
	return false
}

// Type implements the Item interface.
func (i *Interop) Type() Type { return InteropT }

// ToH160 converts an item holding a 20-byte string to an H160. The
// Null item converts to the zero address.
func ToH160(item Item) (types.H160, error) {
	if _, ok := item.(Null); ok {
		return types.H160{}, nil
	}
	b, err := item.TryBytes()
	if err != nil {
		return types.H160{}, err
	}
	return types.H160DecodeBytes(b)
}

func mkInvConversion(from Item, to Type) error {
	return fmt.Errorf("%w: %s/%s", ErrInvalidConversion, from, to)
}
