package io

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// maxArraySize is the maximum number of items in a decoded array.
const maxArraySize = 0x1000000

// Decoding failure kinds. Every decoding helper fails with an error
// wrapping one of these.
var (
	// ErrInsufficientData is returned when the input ends before the
	// value is complete.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrInvalidFormat is returned for malformed input such as an
	// over-long var-int or an illegal tag byte.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrUnsupportedType is returned for values that have no binary
	// form.
	ErrUnsupportedType = errors.New("unsupported type")
)

// BinReader is a convenient wrapper around a byte buffer and err object.
// Used to simplify error handling when reading a struct with many
// fields: the first error sticks and turns all further reads into
// no-ops.
type BinReader struct {
	buf []byte
	pos int
	Err error
}

// NewBinReaderFromBuf makes a BinReader from a byte buffer.
func NewBinReaderFromBuf(b []byte) *BinReader {
	return &BinReader{buf: b}
}

// Len returns the number of bytes not yet consumed.
func (r *BinReader) Len() int {
	return len(r.buf) - r.pos
}

// ReadBytes fills the given slice from the underlying buffer, failing
// with ErrInsufficientData when fewer bytes remain.
func (r *BinReader) ReadBytes(b []byte) {
	if r.Err != nil {
		return
	}
	if r.Len() < len(b) {
		r.Err = fmt.Errorf("%w: want %d bytes, have %d", ErrInsufficientData, len(b), r.Len())
		return
	}
	copy(b, r.buf[r.pos:r.pos+len(b)])
	r.pos += len(b)
}

// ReadB reads a single byte.
func (r *BinReader) ReadB() byte {
	var b [1]byte
	r.ReadBytes(b[:])
	return b[0]
}

// ReadBool reads a boolean encoded as a single 0x00 or 0x01 byte. Any
// other byte fails with ErrInvalidFormat.
func (r *BinReader) ReadBool() bool {
	b := r.ReadB()
	if r.Err != nil {
		return false
	}
	switch b {
	case 0x00:
		return false
	case 0x01:
		return true
	default:
		r.Err = fmt.Errorf("%w: illegal boolean byte 0x%02x", ErrInvalidFormat, b)
		return false
	}
}

// ReadU16LE reads a little-endian uint16.
func (r *BinReader) ReadU16LE() uint16 {
	var b [2]byte
	r.ReadBytes(b[:])
	return binary.LittleEndian.Uint16(b[:])
}

// ReadU32LE reads a little-endian uint32.
func (r *BinReader) ReadU32LE() uint32 {
	var b [4]byte
	r.ReadBytes(b[:])
	return binary.LittleEndian.Uint32(b[:])
}

// ReadU64LE reads a little-endian uint64.
func (r *BinReader) ReadU64LE() uint64 {
	var b [8]byte
	r.ReadBytes(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// ReadI32LE reads a little-endian int32.
func (r *BinReader) ReadI32LE() int32 {
	return int32(r.ReadU32LE())
}

// ReadI64LE reads a little-endian int64.
func (r *BinReader) ReadI64LE() int64 {
	return int64(r.ReadU64LE())
}

// ReadVarUint reads a variable-length integer in the 7-bit
// continuation-byte encoding: each byte contributes its low seven
// bits, a set high bit means more bytes follow. Encodings that shift
// past 64 bits fail with ErrInvalidFormat.
func (r *BinReader) ReadVarUint() uint64 {
	if r.Err != nil {
		return 0
	}
	var (
		val   uint64
		shift uint
	)
	for {
		b := r.ReadB()
		if r.Err != nil {
			return 0
		}
		val |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return val
		}
		shift += 7
		if shift >= 64 {
			r.Err = fmt.Errorf("%w: var-int is too long", ErrInvalidFormat)
			return 0
		}
	}
}

// ReadVarBytes reads a variable-length byte array prefixed with its
// var-int length.
func (r *BinReader) ReadVarBytes(maxSize ...int) []byte {
	ms := maxArraySize
	if len(maxSize) != 0 {
		ms = maxSize[0]
	}
	n := r.ReadVarUint()
	if r.Err != nil {
		return nil
	}
	if n > uint64(ms) {
		r.Err = fmt.Errorf("%w: byte string is too big (%d)", ErrInvalidFormat, n)
		return nil
	}
	if uint64(r.Len()) < n {
		r.Err = fmt.Errorf("%w: want %d bytes, have %d", ErrInsufficientData, n, r.Len())
		return nil
	}
	b := make([]byte, n)
	r.ReadBytes(b)
	return b
}

// ReadString calls ReadVarBytes and casts the result to a string.
func (r *BinReader) ReadString(maxSize ...int) string {
	return string(r.ReadVarBytes(maxSize...))
}

// ReadArray reads a var-int count followed by that many items into a
// slice of E.
func ReadArray[E any, PE interface {
	*E
	decodable
}](r *BinReader, maxSize ...int) []E {
	ms := maxArraySize
	if len(maxSize) != 0 {
		ms = maxSize[0]
	}
	n := r.ReadVarUint()
	if r.Err != nil {
		return nil
	}
	if n > uint64(ms) {
		r.Err = fmt.Errorf("%w: array is too big (%d)", ErrInvalidFormat, n)
		return nil
	}
	arr := make([]E, n)
	for i := range arr {
		PE(&arr[i]).DecodeBinary(r)
		if r.Err != nil {
			return nil
		}
	}
	return arr
}

// ReadOption reads an option tag byte and, when it is 0x01, the value
// that follows. A nil result means the value was absent. Tag bytes
// other than 0x00 and 0x01 fail with ErrInvalidFormat.
func ReadOption[E any, PE interface {
	*E
	decodable
}](r *BinReader) *E {
	tag := r.ReadB()
	if r.Err != nil {
		return nil
	}
	switch tag {
	case 0x00:
		return nil
	case 0x01:
		v := new(E)
		PE(v).DecodeBinary(r)
		if r.Err != nil {
			return nil
		}
		return v
	default:
		r.Err = fmt.Errorf("%w: illegal option tag 0x%02x", ErrInvalidFormat, tag)
		return nil
	}
}
