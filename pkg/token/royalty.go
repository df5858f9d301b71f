package token

import (
	"github.com/epicchainlabs/epicchain-contract-go/pkg/host"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/io"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/stackitem"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/types"
)

// maxBasisPoints is the denominator of royalty shares; the shares of
// one token never sum above it.
const maxBasisPoints = 10000

// RoyaltyRecipient is one royalty share: the recipient and its cut in
// basis points of the sale price.
type RoyaltyRecipient struct {
	Recipient   types.H160
	BasisPoints uint32
}

// EncodeBinary implements the io.Serializable interface.
func (r RoyaltyRecipient) EncodeBinary(w *io.BinWriter) {
	r.Recipient.EncodeBinary(w)
	w.WriteU32LE(r.BasisPoints)
}

// DecodeBinary implements the io.Serializable interface.
func (r *RoyaltyRecipient) DecodeBinary(br *io.BinReader) {
	r.Recipient.DecodeBinary(br)
	r.BasisPoints = br.ReadU32LE()
}

// RoyaltyShare is one computed payout of a sale.
type RoyaltyShare struct {
	Recipient types.H160
	Amount    types.Int256
}

// MintWithRoyalties mints a token and attaches a royalty schedule to
// it. The shares must name non-zero recipients and sum to at most
// 10000 basis points.
func (t *NEP11) MintWithRoyalties(to types.H160, tokenID []byte, properties *stackitem.Map, royalties []RoyaltyRecipient) {
	validateRoyalties(royalties)
	t.Mint(to, tokenID, properties)
	if len(royalties) > 0 {
		t.putRoyalties(royaltyKey(tokenID), royalties)
	}
}

// SetDefaultRoyalty sets the schedule used by tokens minted without
// their own. Only the contract owner may change it; an empty schedule
// clears it.
func (t *NEP11) SetDefaultRoyalty(royalties []RoyaltyRecipient) {
	t.requireOwner()
	if len(royalties) == 0 {
		t.env.Storage.Delete([]byte(keyDefRoyalty))
		return
	}
	validateRoyalties(royalties)
	t.putRoyalties([]byte(keyDefRoyalty), royalties)
}

// RoyaltyInfo computes the payouts due for selling the given token at
// the given price. The token's own schedule wins over the default one;
// without either the result is empty.
func (t *NEP11) RoyaltyInfo(tokenID []byte, royaltyToken types.H160, salePrice types.Int256) []RoyaltyShare {
	t.mustOwnerOf(tokenID)
	if salePrice.IsNegative() {
		host.Abort("invalid argument: negative sale price")
	}
	royalties := t.getRoyalties(royaltyKey(tokenID))
	if royalties == nil {
		royalties = t.getRoyalties([]byte(keyDefRoyalty))
	}
	bpsDiv := types.NewInt256(maxBasisPoints)
	shares := make([]RoyaltyShare, 0, len(royalties))
	for _, r := range royalties {
		cut, err := salePrice.Mul(types.NewInt256(int64(r.BasisPoints)))
		if err != nil {
			host.Abortf("arithmetic fault: %s", err)
		}
		amount, err := cut.Div(bpsDiv)
		if err != nil {
			host.Abortf("arithmetic fault: %s", err)
		}
		shares = append(shares, RoyaltyShare{Recipient: r.Recipient, Amount: amount})
	}
	return shares
}

func (t *NEP11) putRoyalties(key []byte, royalties []RoyaltyRecipient) {
	w := io.NewBufBinWriter()
	io.WriteArray(w.BinWriter, royalties)
	if w.Err != nil {
		host.Abortf("unencodable royalties: %s", w.Err)
	}
	t.env.Storage.Put(key, w.Bytes())
}

func (t *NEP11) getRoyalties(key []byte) []RoyaltyRecipient {
	data, ok := t.env.Storage.Get(key)
	if !ok {
		return nil
	}
	r := io.NewBinReaderFromBuf(data)
	royalties := io.ReadArray[RoyaltyRecipient](r)
	if r.Err != nil {
		host.Abortf("corrupt royalty state: %s", r.Err)
	}
	return royalties
}

func validateRoyalties(royalties []RoyaltyRecipient) {
	var sum uint64
	for _, r := range royalties {
		if r.Recipient.IsZero() {
			host.Abort("invalid argument: zero royalty recipient")
		}
		if r.BasisPoints == 0 || r.BasisPoints > maxBasisPoints {
			host.Abortf("invalid argument: %d basis points", r.BasisPoints)
		}
		sum += uint64(r.BasisPoints)
	}
	if sum > maxBasisPoints {
		host.Abortf("invalid argument: royalty shares sum to %d basis points", sum)
	}
}

func royaltyKey(tokenID []byte) []byte {
	return append([]byte(prefixRoyalty), tokenID...)
}
