package io

// Serializable defines the binary encoding/decoding interface. Errors
// are reported through the sticky Err field of the reader or writer.
type Serializable interface {
	decodable
	encodable
}

type decodable interface {
	DecodeBinary(*BinReader)
}

type encodable interface {
	EncodeBinary(*BinWriter)
}

// ToBytes serializes a given object into a byte slice.
func ToBytes(e encodable) ([]byte, error) {
	w := NewBufBinWriter()
	e.EncodeBinary(w.BinWriter)
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

// FromBytes deserializes a given object from a byte slice.
func FromBytes(data []byte, d decodable) error {
	r := NewBinReaderFromBuf(data)
	d.DecodeBinary(r)
	return r.Err
}
