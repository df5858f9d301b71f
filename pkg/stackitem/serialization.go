package stackitem

import (
	"fmt"

	"github.com/epicchainlabs/epicchain-contract-go/pkg/io"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/types"
)

// MaxDeserialized is the maximum number of items deserialized from a
// single byte string.
const MaxDeserialized = 2048

// Serialize encodes the given Item into a byte slice. Interop items
// have no binary form and fail with io.ErrUnsupportedType.
func Serialize(item Item) ([]byte, error) {
	w := io.NewBufBinWriter()
	EncodeBinary(item, w.BinWriter)
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

// EncodeBinary encodes the given Item into the given BinWriter. Every
// item is written as its type byte followed by the payload: nothing
// for Null, one byte for Boolean, the var-int prefixed minimal
// little-endian form for Integer, var-int prefixed raw bytes for
// ByteString and Buffer, a var-int count followed by the elements for
// Array and a var-int count followed by key-value pairs for Map.
func EncodeBinary(item Item, w *io.BinWriter) {
	if w.Err != nil {
		return
	}
	w.WriteB(byte(item.Type()))
	switch t := item.(type) {
	case Null:
	case Bool:
		w.WriteBool(bool(t))
	case Integer:
		w.WriteVarBytes(types.Int256(t).Bytes())
	case ByteArray:
		w.WriteVarBytes(t)
	case Buffer:
		w.WriteVarBytes(t)
	case *Array:
		w.WriteVarUint(uint64(len(t.value)))
		for i := range t.value {
			EncodeBinary(t.value[i], w)
		}
	case *Map:
		w.WriteVarUint(uint64(len(t.value)))
		for i := range t.value {
			w.WriteVarBytes(t.value[i].Key)
			EncodeBinary(t.value[i].Value, w)
		}
	default:
		w.Err = fmt.Errorf("%w: %s", io.ErrUnsupportedType, item)
	}
}

// Deserialize decodes an Item from the given byte slice.
func Deserialize(data []byte) (Item, error) {
	r := io.NewBinReaderFromBuf(data)
	item := DecodeBinary(r)
	if r.Err != nil {
		return nil, r.Err
	}
	return item, nil
}

// DecodeBinary decodes an Item from the given BinReader.
func DecodeBinary(r *io.BinReader) Item {
	return decodeBinary(r, MaxDeserialized)
}

func decodeBinary(r *io.BinReader, limit int) Item {
	t := Type(r.ReadB())
	if r.Err != nil {
		return nil
	}
	switch t {
	case AnyT:
		return Null{}
	case BooleanT:
		return NewBool(r.ReadBool())
	case IntegerT:
		data := r.ReadVarBytes(types.Int256Size)
		if r.Err != nil {
			return nil
		}
		v, err := types.Int256FromBytes(data)
		if err != nil {
			r.Err = fmt.Errorf("%w: %v", io.ErrInvalidFormat, err)
			return nil
		}
		return NewInteger(v)
	case ByteArrayT:
		return NewByteArray(r.ReadVarBytes())
	case BufferT:
		return NewBuffer(r.ReadVarBytes())
	case ArrayT:
		n := r.ReadVarUint()
		if r.Err != nil {
			return nil
		}
		if n > uint64(limit) {
			r.Err = fmt.Errorf("%w: array of %d items", io.ErrInvalidFormat, n)
			return nil
		}
		items := make([]Item, n)
		for i := range items {
			items[i] = decodeBinary(r, limit/int(n+1))
			if r.Err != nil {
				return nil
			}
		}
		return NewArray(items)
	case MapT:
		n := r.ReadVarUint()
		if r.Err != nil {
			return nil
		}
		if n > uint64(limit) {
			r.Err = fmt.Errorf("%w: map of %d items", io.ErrInvalidFormat, n)
			return nil
		}
		m := NewMap()
		for i := uint64(0); i < n; i++ {
			key := r.ReadVarBytes(MaxKeySize)
			if r.Err != nil {
				return nil
			}
			value := decodeBinary(r, limit/int(n+1))
			if r.Err != nil {
				return nil
			}
			m.Put(key, value)
		}
		return m
	default:
		r.Err = fmt.Errorf("%w: illegal item type 0x%02x", io.ErrInvalidFormat, byte(t))
		return nil
	}
}
