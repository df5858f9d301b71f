package token

import (
	"github.com/epicchainlabs/epicchain-contract-go/pkg/host"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/stackitem"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/storage"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/types"
)

const maxNFTSymbolLen = 16

const nep11Callback = "onNEP11Payment"

// NEP11 is a non-divisible non-fungible token template.
type NEP11 struct {
	base
}

// NewNEP11 returns a non-fungible template running against the given
// environment.
func NewNEP11(env *host.Env) *NEP11 {
	return &NEP11{base: base{env: env}}
}

// Deploy initializes the contract. It returns false without touching
// state when the contract is already deployed or the owner did not
// witness the transaction. Malformed parameters abort.
func (t *NEP11) Deploy(owner types.H160, symbol, baseURI string) bool {
	if t.deployed() {
		return false
	}
	if !t.env.Runtime.CheckWitness(owner) {
		return false
	}
	if owner.IsZero() {
		host.Abort("invalid argument: zero owner")
	}
	if len(symbol) == 0 || len(symbol) > maxNFTSymbolLen {
		host.Abortf("invalid argument: symbol length %d", len(symbol))
	}
	storage.PutH160(t.env.Storage, []byte(keyOwner), owner)
	t.env.Storage.Put([]byte(keySymbol), []byte(symbol))
	if baseURI != "" {
		t.env.Storage.Put([]byte(keyBaseURI), []byte(baseURI))
	}
	t.notify(TokenDeployedEvent, owner, symbol)
	return true
}

// Decimals is always zero, the tokens are indivisible.
func (t *NEP11) Decimals() uint8 {
	return 0
}

// OwnerOf returns the current owner of the given token, or the zero
// hash when no such token exists.
func (t *NEP11) OwnerOf(tokenID []byte) types.H160 {
	checkTokenID(tokenID)
	h, _ := storage.GetH160(t.env.Storage, storage.OwnerKey(tokenID))
	return h
}

// mustOwnerOf is OwnerOf for mutating methods: a missing token aborts.
func (t *NEP11) mustOwnerOf(tokenID []byte) types.H160 {
	owner := t.OwnerOf(tokenID)
	if owner.IsZero() {
		host.Abort("token does not exist")
	}
	return owner
}

// Properties returns the metadata map the token was minted with.
func (t *NEP11) Properties(tokenID []byte) *stackitem.Map {
	checkTokenID(tokenID)
	data, ok := t.env.Storage.Get(storage.MetadataKey(tokenID))
	if !ok {
		host.Abort("token does not exist")
	}
	item, err := stackitem.Deserialize(data)
	if err != nil {
		host.Abortf("corrupt token metadata: %s", err)
	}
	m, ok := item.(*stackitem.Map)
	if !ok {
		host.Abort("corrupt token metadata: not a map")
	}
	return m
}

// TokensOf returns up to limit token ids held by the given account in
// key order, together with a continuation key for the next page. The
// continuation key is nil when the listing is complete; pass the
// returned key back to resume.
func (t *NEP11) TokensOf(owner types.H160, after []byte, limit int) ([][]byte, []byte) {
	return storage.FindPage(t.env.Storage, storage.AccountTokensPrefix(owner), after, limit)
}

// Tokens returns up to limit token ids that currently exist, with the
// same paging contract as TokensOf.
func (t *NEP11) Tokens(after []byte, limit int) ([][]byte, []byte) {
	return storage.FindPage(t.env.Storage, []byte{storage.PrefixTokenOwner}, after, limit)
}

// Transfer reassigns the token to the given account. The current
// owner or its approved delegate must authorize; transferring a token
// to its current owner aborts. Any approval is cleared.
func (t *NEP11) Transfer(to types.H160, tokenID []byte, data stackitem.Item) bool {
	owner := t.mustOwnerOf(tokenID)
	if to == owner {
		host.Abort("invalid argument: transfer to current owner")
	}
	if to.IsZero() {
		host.Abort("invalid argument: zero recipient")
	}
	if !t.canTransfer(owner, tokenID) {
		host.Abort("unauthorized")
	}
	t.reassign(owner, to, tokenID)
	t.postTransfer(owner, to, types.Int256One(), tokenID, nep11Callback, data)
	return true
}

// Approve lets the given account transfer the token on the owner's
// behalf, replacing any previous delegate. Only the token owner may
// approve.
func (t *NEP11) Approve(to types.H160, tokenID []byte) {
	owner := t.mustOwnerOf(tokenID)
	if !t.authorizedAs(owner) {
		host.Abort("unauthorized")
	}
	storage.PutH160(t.env.Storage, approvalKey(tokenID), to)
	t.notify(ApprovalEvent, owner, to, tokenID)
}

// GetApproved returns the approved delegate of the given token. The
// second result is false when no approval is set.
func (t *NEP11) GetApproved(tokenID []byte) (types.H160, bool) {
	checkTokenID(tokenID)
	if _, ok := t.env.Storage.Get(storage.OwnerKey(tokenID)); !ok {
		host.Abort("token does not exist")
	}
	return storage.GetH160(t.env.Storage, approvalKey(tokenID))
}

// Mint creates a new token with the given id and metadata on the
// recipient's account. Only the contract owner may mint.
func (t *NEP11) Mint(to types.H160, tokenID []byte, properties *stackitem.Map) {
	t.requireOwner()
	checkTokenID(tokenID)
	if to.IsZero() {
		host.Abort("invalid argument: zero recipient")
	}
	if _, ok := t.env.Storage.Get(storage.OwnerKey(tokenID)); ok {
		host.Abort("token already exists")
	}
	if properties == nil {
		properties = stackitem.NewMap()
	}
	meta, err := stackitem.Serialize(properties)
	if err != nil {
		host.Abortf("invalid argument: %s", err)
	}
	t.env.Storage.Put(storage.MetadataKey(tokenID), meta)
	storage.PutH160(t.env.Storage, storage.OwnerKey(tokenID), to)
	t.env.Storage.Put(storage.AccountTokenKey(to, tokenID), []byte{1})
	t.addBalance(to, types.Int256One())
	t.addSupply(types.Int256One(), types.Int256Zero())
	t.postTransfer(types.H160{}, to, types.Int256One(), tokenID, nep11Callback, nil)
}

// Burn destroys the given token. The token owner must authorize.
func (t *NEP11) Burn(tokenID []byte) {
	owner := t.mustOwnerOf(tokenID)
	if !t.canTransfer(owner, tokenID) {
		host.Abort("unauthorized")
	}
	t.env.Storage.Delete(storage.MetadataKey(tokenID))
	t.env.Storage.Delete(storage.OwnerKey(tokenID))
	t.env.Storage.Delete(storage.AccountTokenKey(owner, tokenID))
	t.env.Storage.Delete(approvalKey(tokenID))
	t.env.Storage.Delete(royaltyKey(tokenID))
	minusOne := types.Int256MinusOne()
	t.addBalance(owner, minusOne)
	t.addSupply(minusOne, types.Int256Zero())
	t.postTransfer(owner, types.H160{}, types.Int256One(), tokenID, nep11Callback, nil)
}

// SetBaseURI replaces the base URI used by TokenURI. Only the contract
// owner may change it.
func (t *NEP11) SetBaseURI(uri string) {
	t.requireOwner()
	if uri == "" {
		t.env.Storage.Delete([]byte(keyBaseURI))
		return
	}
	t.env.Storage.Put([]byte(keyBaseURI), []byte(uri))
}

// TokenURI returns the base URI with the token id appended, or the
// bare token id when no base URI is set.
func (t *NEP11) TokenURI(tokenID []byte) string {
	if _, ok := t.env.Storage.Get(storage.OwnerKey(tokenID)); !ok {
		host.Abort("token does not exist")
	}
	uri, _ := storage.GetString(t.env.Storage, []byte(keyBaseURI))
	return uri + string(tokenID)
}

// canTransfer reports whether the current transaction is authorized to
// move the given token: by its owner or by the approved delegate.
func (t *NEP11) canTransfer(owner types.H160, tokenID []byte) bool {
	if t.authorizedAs(owner) {
		return true
	}
	delegate, ok := storage.GetH160(t.env.Storage, approvalKey(tokenID))
	return ok && t.authorizedAs(delegate)
}

// reassign moves ownership, clears the approval and keeps the balances
// and the account index in step.
func (t *NEP11) reassign(from, to types.H160, tokenID []byte) {
	t.env.Storage.Delete(approvalKey(tokenID))
	storage.PutH160(t.env.Storage, storage.OwnerKey(tokenID), to)
	t.env.Storage.Delete(storage.AccountTokenKey(from, tokenID))
	t.env.Storage.Put(storage.AccountTokenKey(to, tokenID), []byte{1})
	t.addBalance(from, types.Int256MinusOne())
	t.addBalance(to, types.Int256One())
}

func approvalKey(tokenID []byte) []byte {
	return append([]byte(prefixApprove), tokenID...)
}
