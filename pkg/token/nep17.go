package token

import (
	"github.com/epicchainlabs/epicchain-contract-go/pkg/host"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/stackitem"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/storage"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/types"
)

// Deploy-time limits of the fungible template.
const (
	maxFungibleSymbolLen = 10
	maxDecimals          = 18
)

const nep17Callback = "onNEP17Payment"

// NEP17 is a fungible token template. One instance wraps one
// invocation environment; methods map one to one onto the contract's
// public interface.
type NEP17 struct {
	base
}

// NewNEP17 returns a fungible template running against the given
// environment.
func NewNEP17(env *host.Env) *NEP17 {
	return &NEP17{base: base{env: env}}
}

// Deploy initializes the contract. It returns false without touching
// state when the contract is already deployed or the owner did not
// witness the transaction, so deployment scripts can retry. Malformed
// parameters abort.
func (t *NEP17) Deploy(owner types.H160, symbol string, decimals uint8, initialSupply, maxSupply types.Int256) bool {
	if t.deployed() {
		return false
	}
	if !t.env.Runtime.CheckWitness(owner) {
		return false
	}
	if owner.IsZero() {
		host.Abort("invalid argument: zero owner")
	}
	if len(symbol) == 0 || len(symbol) > maxFungibleSymbolLen {
		host.Abortf("invalid argument: symbol length %d", len(symbol))
	}
	if decimals > maxDecimals {
		host.Abortf("invalid argument: %d decimals", decimals)
	}
	if initialSupply.IsNegative() {
		host.Abort("invalid argument: negative initial supply")
	}
	if maxSupply.IsNegative() || (!maxSupply.IsZero() && maxSupply.Lt(initialSupply)) {
		host.Abort("invalid argument: max supply below initial supply")
	}

	storage.PutH160(t.env.Storage, []byte(keyOwner), owner)
	t.env.Storage.Put([]byte(keySymbol), []byte(symbol))
	t.env.Storage.Put([]byte(keyDecimals), []byte{decimals})
	storage.PutInt(t.env.Storage, []byte(keyMaxSupply), maxSupply)

	if initialSupply.IsPositive() {
		t.addBalance(owner, initialSupply)
		t.addSupply(initialSupply, maxSupply)
		t.postTransfer(types.H160{}, owner, initialSupply, nil, nep17Callback, nil)
	}
	t.notify(TokenDeployedEvent, owner, symbol, initialSupply)
	return true
}

// Decimals returns the number of decimals fixed at deployment.
func (t *NEP17) Decimals() uint8 {
	data, ok := t.env.Storage.Get([]byte(keyDecimals))
	if !ok || len(data) != 1 {
		host.Abort("not deployed")
	}
	return data[0]
}

// MaxSupply returns the mint cap, zero meaning uncapped.
func (t *NEP17) MaxSupply() types.Int256 {
	return storage.GetInt(t.env.Storage, []byte(keyMaxSupply))
}

// IsPaused reports whether transfers and minting are paused.
func (t *NEP17) IsPaused() bool {
	return storage.GetBool(t.env.Storage, []byte(keyPaused))
}

// Transfer moves amount from one account to the other. A zero amount
// and a self-transfer are valid no-ops that change no state and emit
// no event. Any precondition violation aborts.
func (t *NEP17) Transfer(from, to types.H160, amount types.Int256, data stackitem.Item) bool {
	if amount.IsNegative() {
		host.Abort("invalid argument: negative amount")
	}
	if amount.IsZero() || from == to {
		return true
	}
	t.requireActive()
	if !t.authorizedAs(from) {
		host.Abort("unauthorized")
	}
	if t.BalanceOf(from).Lt(amount) {
		host.Abort("insufficient funds")
	}
	neg, err := amount.Neg()
	if err != nil {
		host.Abortf("invalid argument: %s", err)
	}
	t.addBalance(from, neg)
	t.addBalance(to, amount)
	t.postTransfer(from, to, amount, nil, nep17Callback, data)
	return true
}

// Allowance returns the amount the spender may transfer out of the
// owner's balance.
func (t *NEP17) Allowance(owner, spender types.H160) types.Int256 {
	return storage.GetInt(t.env.Storage, allowanceKey(owner, spender))
}

// Approve sets the spender's allowance over the owner's balance,
// replacing any previous value. A zero amount removes the entry.
func (t *NEP17) Approve(owner, spender types.H160, amount types.Int256) bool {
	if amount.IsNegative() {
		host.Abort("invalid argument: negative amount")
	}
	t.requireActive()
	if !t.authorizedAs(owner) {
		host.Abort("unauthorized")
	}
	key := allowanceKey(owner, spender)
	if amount.IsZero() {
		t.env.Storage.Delete(key)
	} else {
		storage.PutInt(t.env.Storage, key, amount)
	}
	t.notify(ApprovalEvent, owner, spender, amount)
	return true
}

// TransferFrom moves amount from the owner's balance on behalf of an
// approved spender, reducing the allowance.
func (t *NEP17) TransferFrom(spender, from, to types.H160, amount types.Int256, data stackitem.Item) bool {
	if amount.IsNegative() {
		host.Abort("invalid argument: negative amount")
	}
	if amount.IsZero() || from == to {
		return true
	}
	t.requireActive()
	if !t.authorizedAs(spender) {
		host.Abort("unauthorized")
	}
	key := allowanceKey(from, spender)
	allowed := storage.GetInt(t.env.Storage, key)
	if allowed.Lt(amount) {
		host.Abort("insufficient allowance")
	}
	if t.BalanceOf(from).Lt(amount) {
		host.Abort("insufficient funds")
	}
	left, err := allowed.Sub(amount)
	if err != nil {
		host.Abortf("arithmetic fault: %s", err)
	}
	if left.IsZero() {
		t.env.Storage.Delete(key)
	} else {
		storage.PutInt(t.env.Storage, key, left)
	}
	neg, _ := amount.Neg()
	t.addBalance(from, neg)
	t.addBalance(to, amount)
	t.postTransfer(from, to, amount, nil, nep17Callback, data)
	return true
}

// Mint creates amount new tokens on the recipient's balance. Only the
// owner and registered minters may mint; the max supply cap applies.
func (t *NEP17) Mint(to types.H160, amount types.Int256) {
	if amount.IsNegative() {
		host.Abort("invalid argument: negative amount")
	}
	t.requireMinter()
	t.requireActive()
	if amount.IsZero() {
		return
	}
	t.addBalance(to, amount)
	t.addSupply(amount, t.MaxSupply())
	t.postTransfer(types.H160{}, to, amount, nil, nep17Callback, nil)
	t.notify(TokensMintedEvent, to, amount)
}

// Burn destroys amount tokens from the given account. The account
// itself or the contract owner must witness the transaction.
func (t *NEP17) Burn(from types.H160, amount types.Int256) {
	if amount.IsNegative() {
		host.Abort("invalid argument: negative amount")
	}
	if !t.authorizedAs(from) && !t.env.Runtime.CheckWitness(t.Owner()) {
		host.Abort("unauthorized")
	}
	if amount.IsZero() {
		return
	}
	if t.BalanceOf(from).Lt(amount) {
		host.Abort("insufficient funds")
	}
	neg, _ := amount.Neg()
	t.addBalance(from, neg)
	t.addSupply(neg, types.Int256Zero())
	t.postTransfer(from, types.H160{}, amount, nil, nep17Callback, nil)
	t.notify(TokensBurnedEvent, from, amount)
}

// IsMinter reports whether the given account may mint. The contract
// owner is always a minter.
func (t *NEP17) IsMinter(h types.H160) bool {
	if h == t.Owner() {
		return true
	}
	_, ok := t.env.Storage.Get(minterKey(h))
	return ok
}

// AddMinter registers a minter. It returns false when the account
// already is one.
func (t *NEP17) AddMinter(h types.H160) bool {
	t.requireOwner()
	if h.IsZero() {
		host.Abort("invalid argument: zero minter")
	}
	key := minterKey(h)
	if _, ok := t.env.Storage.Get(key); ok {
		return false
	}
	t.env.Storage.Put(key, []byte{1})
	t.notify(MinterAddedEvent, h)
	return true
}

// RemoveMinter removes a registered minter. It returns false when the
// account is not one.
func (t *NEP17) RemoveMinter(h types.H160) bool {
	t.requireOwner()
	key := minterKey(h)
	if _, ok := t.env.Storage.Get(key); !ok {
		return false
	}
	t.env.Storage.Delete(key)
	t.notify(MinterRemovedEvent, h)
	return true
}

// Pause stops transfers, approvals and minting. It returns false when
// already paused.
func (t *NEP17) Pause() bool {
	t.requireOwner()
	if t.IsPaused() {
		return false
	}
	storage.PutBool(t.env.Storage, []byte(keyPaused), true)
	t.notify(ContractPausedEvent)
	return true
}

// Unpause resumes transfers, approvals and minting. It returns false
// when not paused.
func (t *NEP17) Unpause() bool {
	t.requireOwner()
	if !t.IsPaused() {
		return false
	}
	t.env.Storage.Delete([]byte(keyPaused))
	t.notify(ContractUnpausedEvent)
	return true
}

func (t *NEP17) requireActive() {
	if t.IsPaused() {
		host.Abort("paused")
	}
}

// requireMinter aborts unless the transaction carries the witness of
// the owner or of some registered minter, or a registered minter
// contract is the direct caller.
func (t *NEP17) requireMinter() {
	if t.env.Runtime.CheckWitness(t.Owner()) {
		return
	}
	it := t.env.Storage.Find([]byte(prefixMinter), host.FindKeysOnly|host.FindRemovePrefix)
	for it.Next() {
		h, err := types.H160DecodeBytes(it.Key())
		if err != nil {
			host.Abortf("corrupt minter state: %s", err)
		}
		if t.authorizedAs(h) {
			return
		}
	}
	host.Abort("unauthorized")
}

func allowanceKey(owner, spender types.H160) []byte {
	key := append([]byte(prefixAllow), owner.Bytes()...)
	return append(key, spender.Bytes()...)
}

func minterKey(h types.H160) []byte {
	return append([]byte(prefixMinter), h.Bytes()...)
}
