package memhost

import (
	"crypto/sha256"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/types"
)

const signatureLen = 64

// hostCrypto adapts Host to the host.Crypto interface. Signatures are
// verified against the sha256 digest of the configured signed payload.
type hostCrypto Host

// CheckSig implements the host.Crypto interface. The signature is the
// 64-byte r||s form, the key is any parseable secp256k1 public key.
func (h *hostCrypto) CheckSig(pub, sig []byte) bool {
	if len(sig) != signatureLen {
		return false
	}
	pk, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return false
	}
	var r, s secp256k1.ModNScalar
	if r.SetByteSlice(sig[:32]) || s.SetByteSlice(sig[32:]) {
		return false
	}
	digest := sha256.Sum256(h.signedPayload)
	return ecdsa.NewSignature(&r, &s).Verify(digest[:], pk)
}

// CheckMultisig implements the host.Crypto interface. Signatures must
// come in the order of the keys they match; every signature has to
// match a key, keys may be skipped.
func (h *hostCrypto) CheckMultisig(pubs, sigs [][]byte) bool {
	if len(sigs) == 0 || len(sigs) > len(pubs) {
		return false
	}
	j := 0
	for i := 0; i < len(sigs); i++ {
		for j < len(pubs) && !h.CheckSig(pubs[j], sigs[i]) {
			j++
		}
		if j >= len(pubs) {
			return false
		}
		j++
	}
	return true
}

// Random implements the host.Crypto interface. The sequence is driven
// by the host seed, so tests get reproducible values.
func (h *hostCrypto) Random() types.Int256 {
	buf := make([]byte, 17)
	h.rng.Read(buf[:16])
	v, _ := types.Int256FromBytes(buf)
	return v
}
