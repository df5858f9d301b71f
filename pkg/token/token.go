/*
Package token implements reusable NEP-17 and NEP-11 token templates on
top of the host capability surface. The templates share one ledger: a
total supply counter, per-account balances and, for the non-fungible
template, per-token ownership with an account index. Every mutating
method either completes fully or aborts the invocation.
*/
package token

import (
	"github.com/epicchainlabs/epicchain-contract-go/pkg/host"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/storage"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/types"
)

// Application storage keys. These stay outside the reserved 0x00-0x04
// prefix range and readable in a storage dump.
const (
	keyOwner      = "owner"
	keySymbol     = "symbol"
	keyDecimals   = "decimals"
	keyMaxSupply  = "maxSupply"
	keyPaused     = "paused"
	keyBaseURI    = "baseURI"
	prefixMinter  = "minter_"
	prefixAllow   = "allowance_"
	prefixApprove = "approval_"
	prefixRoyalty = "royalty_"
	keyDefRoyalty = "defaultRoyalty"
)

// MaxTokenIDLen is the longest allowed non-fungible token identifier.
const MaxTokenIDLen = 64

// base carries the state shared by both templates.
type base struct {
	env *host.Env
}

// Symbol returns the token symbol fixed at deployment.
func (t *base) Symbol() string {
	s, ok := storage.GetString(t.env.Storage, []byte(keySymbol))
	if !ok {
		host.Abort("not deployed")
	}
	return s
}

// TotalSupply returns the current total supply.
func (t *base) TotalSupply() types.Int256 {
	return storage.GetInt(t.env.Storage, storage.TotalSupplyKey())
}

// BalanceOf returns the balance of the given account. For the
// non-fungible template this is the number of tokens held.
func (t *base) BalanceOf(owner types.H160) types.Int256 {
	return storage.GetInt(t.env.Storage, storage.BalanceKey(owner))
}

// Owner returns the contract owner fixed at deployment.
func (t *base) Owner() types.H160 {
	h, ok := storage.GetH160(t.env.Storage, []byte(keyOwner))
	if !ok {
		host.Abort("not deployed")
	}
	return h
}

// deployed keys off the owner entry, the first thing Deploy writes.
func (t *base) deployed() bool {
	_, ok := t.env.Storage.Get([]byte(keyOwner))
	return ok
}

// requireOwner aborts unless the contract owner witnessed the current
// transaction.
func (t *base) requireOwner() types.H160 {
	owner := t.Owner()
	if !t.env.Runtime.CheckWitness(owner) {
		host.Abort("unauthorized")
	}
	return owner
}

// addBalance moves the balance of the given account by delta. The
// entry is removed when the balance reaches zero; a balance that would
// go negative aborts.
func (t *base) addBalance(owner types.H160, delta types.Int256) {
	key := storage.BalanceKey(owner)
	old := storage.GetInt(t.env.Storage, key)
	next, err := old.Add(delta)
	if err != nil {
		host.Abortf("balance overflow: %s", err)
	}
	switch {
	case next.IsNegative():
		host.Abort("insufficient funds")
	case next.IsZero():
		t.env.Storage.Delete(key)
	default:
		storage.PutInt(t.env.Storage, key, next)
	}
}

// addSupply moves the total supply by delta, enforcing the cap for
// positive deltas. A zero cap means uncapped.
func (t *base) addSupply(delta, limit types.Int256) {
	old := t.TotalSupply()
	next, err := old.Add(delta)
	if err != nil {
		host.Abortf("supply overflow: %s", err)
	}
	if next.IsNegative() {
		host.Abort("supply underflow")
	}
	if delta.IsPositive() && !limit.IsZero() && next.Gt(limit) {
		host.Abort("max supply exceeded")
	}
	storage.PutInt(t.env.Storage, storage.TotalSupplyKey(), next)
}

// authorizedAs reports whether the given account either witnessed the
// transaction or is the directly calling contract.
func (t *base) authorizedAs(h types.H160) bool {
	return t.env.Runtime.CheckWitness(h) || t.env.Runtime.CallingScriptHash() == h
}

func checkTokenID(tokenID []byte) {
	if len(tokenID) == 0 || len(tokenID) > MaxTokenIDLen {
		host.Abortf("invalid argument: token id length %d", len(tokenID))
	}
}
