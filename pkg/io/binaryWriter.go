package io

import (
	"encoding/binary"
	"io"
)

// BinWriter is a convenient wrapper around an io.Writer and err object.
// Used to simplify error handling when writing a struct with many
// fields into an io.Writer.
type BinWriter struct {
	w   io.Writer
	Err error
	uv  [10]byte
}

// NewBinWriterFromIO makes a BinWriter from io.Writer.
func NewBinWriterFromIO(iow io.Writer) *BinWriter {
	return &BinWriter{w: iow}
}

// WriteBytes writes a variable byte slice into the underlying
// io.Writer without a prefix.
func (w *BinWriter) WriteBytes(b []byte) {
	if w.Err != nil {
		return
	}
	_, w.Err = w.w.Write(b)
}

// WriteB writes a byte into the underlying io.Writer.
func (w *BinWriter) WriteB(u8 byte) {
	w.uv[0] = u8
	w.WriteBytes(w.uv[:1])
}

// WriteBool writes a boolean value into the underlying io.Writer
// encoded as a byte with a value of 0 or 1.
func (w *BinWriter) WriteBool(b bool) {
	var i byte
	if b {
		i = 1
	}
	w.WriteB(i)
}

// WriteU16LE writes a uint16 value into the underlying io.Writer in
// little-endian format.
func (w *BinWriter) WriteU16LE(u16 uint16) {
	binary.LittleEndian.PutUint16(w.uv[:2], u16)
	w.WriteBytes(w.uv[:2])
}

// WriteU32LE writes a uint32 value into the underlying io.Writer in
// little-endian format.
func (w *BinWriter) WriteU32LE(u32 uint32) {
	binary.LittleEndian.PutUint32(w.uv[:4], u32)
	w.WriteBytes(w.uv[:4])
}

// WriteU64LE writes a uint64 value into the underlying io.Writer in
// little-endian format.
func (w *BinWriter) WriteU64LE(u64 uint64) {
	binary.LittleEndian.PutUint64(w.uv[:8], u64)
	w.WriteBytes(w.uv[:8])
}

// WriteI32LE writes an int32 value into the underlying io.Writer in
// little-endian format.
func (w *BinWriter) WriteI32LE(i32 int32) {
	w.WriteU32LE(uint32(i32))
}

// WriteI64LE writes an int64 value into the underlying io.Writer in
// little-endian format.
func (w *BinWriter) WriteI64LE(i64 int64) {
	w.WriteU64LE(uint64(i64))
}

// WriteVarUint writes a uint64 into the underlying writer using the
// 7-bit continuation-byte encoding.
func (w *BinWriter) WriteVarUint(val uint64) {
	if w.Err != nil {
		return
	}
	n := PutVarUint(w.uv[:], val)
	w.WriteBytes(w.uv[:n])
}

// PutVarUint puts val in the var-int form into the pre-allocated
// buffer, which must hold at least 10 bytes, and returns the number of
// bytes written.
func PutVarUint(data []byte, val uint64) int {
	_ = data[9]
	n := 0
	for val >= 0x80 {
		data[n] = byte(val&0x7f) | 0x80
		val >>= 7
		n++
	}
	data[n] = byte(val)
	return n + 1
}

// WriteVarBytes writes a variable-length byte array prefixed with its
// var-int length into the underlying io.Writer.
func (w *BinWriter) WriteVarBytes(b []byte) {
	w.WriteVarUint(uint64(len(b)))
	w.WriteBytes(b)
}

// WriteString writes a variable-length string into the underlying
// io.Writer.
func (w *BinWriter) WriteString(s string) {
	w.WriteVarUint(uint64(len(s)))
	if w.Err != nil {
		return
	}
	_, w.Err = io.WriteString(w.w, s)
}

// WriteArray writes a var-int count followed by the items of arr in
// order. Nil and empty slices encode identically as a zero count.
func WriteArray[Slice ~[]E, E encodable](w *BinWriter, arr Slice) {
	w.WriteVarUint(uint64(len(arr)))
	for i := range arr {
		arr[i].EncodeBinary(w)
	}
}

// WriteOption writes an option tag byte followed by the value when v
// is not nil.
func WriteOption[E encodable](w *BinWriter, v *E) {
	if v == nil {
		w.WriteB(0x00)
		return
	}
	w.WriteB(0x01)
	(*v).EncodeBinary(w)
}
