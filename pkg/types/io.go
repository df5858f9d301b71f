package types

import (
	"fmt"

	"github.com/epicchainlabs/epicchain-contract-go/pkg/io"
)

// EncodeBinary implements the io.Serializable interface. An H160 is
// exactly 20 raw bytes on the wire.
func (h H160) EncodeBinary(w *io.BinWriter) {
	w.WriteBytes(h[:])
}

// DecodeBinary implements the io.Serializable interface.
func (h *H160) DecodeBinary(r *io.BinReader) {
	r.ReadBytes(h[:])
}

// EncodeBinary implements the io.Serializable interface. An H256 is
// exactly 32 raw bytes on the wire.
func (h H256) EncodeBinary(w *io.BinWriter) {
	w.WriteBytes(h[:])
}

// DecodeBinary implements the io.Serializable interface.
func (h *H256) DecodeBinary(r *io.BinReader) {
	r.ReadBytes(h[:])
}

// EncodeBinary implements the io.Serializable interface. The value is
// written as its minimal little-endian two's-complement form prefixed
// with a var-int length.
func (a Int256) EncodeBinary(w *io.BinWriter) {
	w.WriteVarBytes(a.Bytes())
}

// DecodeBinary implements the io.Serializable interface.
func (a *Int256) DecodeBinary(r *io.BinReader) {
	data := r.ReadVarBytes(Int256Size)
	if r.Err != nil {
		return
	}
	v, err := Int256FromBytes(data)
	if err != nil {
		r.Err = fmt.Errorf("%w: %v", io.ErrInvalidFormat, err)
		return
	}
	*a = v
}
