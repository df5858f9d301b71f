package token

import (
	"testing"

	"github.com/epicchainlabs/epicchain-contract-go/pkg/host"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/host/memhost"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/stackitem"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/storage"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newNFT deploys a non-fungible token without a base URI.
func newNFT(t *testing.T) (*memhost.Host, *NEP11) {
	h := memhost.New(withOwnerWitness())
	tok := NewNEP11(h.Env())
	require.NoError(t, h.Invoke(func(env *host.Env) {
		require.True(t, NewNEP11(env).Deploy(ownerAcc, "NFT", ""))
	}))
	return h, tok
}

func kittyProperties() *stackitem.Map {
	m := stackitem.NewMap()
	m.Put([]byte("name"), stackitem.Make("kitty"))
	return m
}

func requireNFTTransferArgs(t *testing.T, n memhost.Notification, from, to types.H160, tokenID string) {
	require.Len(t, n.Args, 4)
	gotFrom, err := stackitem.ToH160(n.Args[0])
	require.NoError(t, err)
	gotTo, err := stackitem.ToH160(n.Args[1])
	require.NoError(t, err)
	amount, err := n.Args[2].TryInteger()
	require.NoError(t, err)
	id, err := n.Args[3].TryBytes()
	require.NoError(t, err)
	assert.True(t, from.Equals(gotFrom))
	assert.True(t, to.Equals(gotTo))
	assert.True(t, amount.IsOne())
	assert.Equal(t, tokenID, string(id))
}

func TestNEP11Deploy(t *testing.T) {
	h, tok := newNFT(t)

	assert.Equal(t, "NFT", tok.Symbol())
	assert.Equal(t, uint8(0), tok.Decimals())
	assert.True(t, tok.TotalSupply().IsZero())

	require.NoError(t, h.Invoke(func(env *host.Env) {
		assert.False(t, NewNEP11(env).Deploy(ownerAcc, "OTHER", ""))
	}))

	err := h.Invoke(func(env *host.Env) {
		env.Storage.Delete([]byte("owner")) // force a clean slate
		NewNEP11(env).Deploy(ownerAcc, "SEVENTEENCHARSYMB", "")
	})
	require.Error(t, err)
}

func TestNEP11OwnerOfMissingToken(t *testing.T) {
	h, tok := newNFT(t)

	// A token that was never minted has the zero hash as its owner.
	require.NoError(t, h.Invoke(func(env *host.Env) {
		assert.True(t, NewNEP11(env).OwnerOf([]byte("missing")).IsZero())
	}))
	assert.True(t, tok.OwnerOf([]byte("missing")).IsZero())

	require.NoError(t, h.Invoke(func(env *host.Env) {
		NewNEP11(env).Mint(accA, []byte("t1"), nil)
	}))
	assert.True(t, tok.OwnerOf([]byte("t1")).Equals(accA))

	// Mutating a missing token still faults.
	err := h.Invoke(func(env *host.Env) {
		NewNEP11(env).Approve(accB, []byte("missing"))
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token does not exist")

	err = h.Invoke(func(env *host.Env) {
		NewNEP11(env).Burn([]byte("missing"))
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token does not exist")
}

func TestNEP11MintAndTransfer(t *testing.T) {
	h, tok := newNFT(t)
	h.AddWitness(accA)

	require.NoError(t, h.Invoke(func(env *host.Env) {
		NewNEP11(env).Mint(accA, []byte("t1"), kittyProperties())
	}))
	assert.True(t, tok.OwnerOf([]byte("t1")).Equals(accA))
	assert.Equal(t, "1", tok.BalanceOf(accA).String())
	assert.Equal(t, "1", tok.TotalSupply().String())

	props := tok.Properties([]byte("t1"))
	assert.True(t, props.Get([]byte("name")).Equals(stackitem.NewByteArray([]byte("kitty"))))

	require.NoError(t, h.Invoke(func(env *host.Env) {
		NewNEP11(env).Approve(accC, []byte("t1"))
	}))
	approved, ok := tok.GetApproved([]byte("t1"))
	require.True(t, ok)
	assert.True(t, approved.Equals(accC))

	require.NoError(t, h.Invoke(func(env *host.Env) {
		assert.True(t, NewNEP11(env).Transfer(accB, []byte("t1"), nil))
	}))

	assert.True(t, tok.OwnerOf([]byte("t1")).Equals(accB))
	assert.True(t, tok.BalanceOf(accA).IsZero())
	assert.Equal(t, "1", tok.BalanceOf(accB).String())

	// The transfer cleared the approval.
	_, ok = tok.GetApproved([]byte("t1"))
	assert.False(t, ok)

	// The account index followed the token.
	ids, _ := tok.TokensOf(accB, nil, 10)
	assert.Equal(t, [][]byte{[]byte("t1")}, ids)
	ids, _ = tok.TokensOf(accA, nil, 10)
	assert.Empty(t, ids)

	events := transferEvents(h)
	require.Len(t, events, 2)
	requireNFTTransferArgs(t, events[0], types.H160{}, accA, "t1")
	requireNFTTransferArgs(t, events[1], accA, accB, "t1")
}

func TestNEP11MintValidation(t *testing.T) {
	h, _ := newNFT(t)

	require.NoError(t, h.Invoke(func(env *host.Env) {
		NewNEP11(env).Mint(accA, []byte("t1"), nil)
	}))

	for name, fn := range map[string]func(tok *NEP11){
		"duplicate id":   func(tok *NEP11) { tok.Mint(accB, []byte("t1"), nil) },
		"empty id":       func(tok *NEP11) { tok.Mint(accB, nil, nil) },
		"oversized id":   func(tok *NEP11) { tok.Mint(accB, make([]byte, 65), nil) },
		"zero recipient": func(tok *NEP11) { tok.Mint(types.H160{}, []byte("t2"), nil) },
	} {
		t.Run(name, func(t *testing.T) {
			err := h.Invoke(func(env *host.Env) {
				fn(NewNEP11(env))
			})
			require.Error(t, err)
		})
	}

	// Only the contract owner mints.
	h.RemoveWitness(ownerAcc)
	err := h.Invoke(func(env *host.Env) {
		NewNEP11(env).Mint(accB, []byte("t2"), nil)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestNEP11TransferAuthorization(t *testing.T) {
	h, tok := newNFT(t)
	require.NoError(t, h.Invoke(func(env *host.Env) {
		NewNEP11(env).Mint(accA, []byte("t1"), nil)
	}))
	h.RemoveWitness(ownerAcc)

	// Nobody relevant witnessed the transaction.
	err := h.Invoke(func(env *host.Env) {
		NewNEP11(env).Transfer(accB, []byte("t1"), nil)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")

	// Transfer to the current owner is rejected.
	h.AddWitness(accA)
	err = h.Invoke(func(env *host.Env) {
		NewNEP11(env).Transfer(accA, []byte("t1"), nil)
	})
	require.Error(t, err)

	// An approved delegate moves the token on its own witness.
	require.NoError(t, h.Invoke(func(env *host.Env) {
		NewNEP11(env).Approve(accC, []byte("t1"))
	}))
	h.RemoveWitness(accA)
	h.AddWitness(accC)
	require.NoError(t, h.Invoke(func(env *host.Env) {
		NewNEP11(env).Transfer(accB, []byte("t1"), nil)
	}))
	assert.True(t, tok.OwnerOf([]byte("t1")).Equals(accB))

	// Unknown tokens fault.
	err = h.Invoke(func(env *host.Env) {
		NewNEP11(env).Transfer(accB, []byte("missing"), nil)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token does not exist")
}

func TestNEP11Burn(t *testing.T) {
	h, tok := newNFT(t)
	h.AddWitness(accA)
	require.NoError(t, h.Invoke(func(env *host.Env) {
		NewNEP11(env).Mint(accA, []byte("t1"), kittyProperties())
		NewNEP11(env).Approve(accC, []byte("t1"))
	}))

	require.NoError(t, h.Invoke(func(env *host.Env) {
		NewNEP11(env).Burn([]byte("t1"))
	}))

	assert.True(t, tok.TotalSupply().IsZero())
	assert.True(t, tok.BalanceOf(accA).IsZero())
	ids, _ := tok.TokensOf(accA, nil, 10)
	assert.Empty(t, ids)

	// Nothing of the token is left behind.
	env := h.Env()
	for _, key := range [][]byte{
		storage.OwnerKey([]byte("t1")),
		storage.MetadataKey([]byte("t1")),
		storage.AccountTokenKey(accA, []byte("t1")),
		append([]byte("approval_"), 't', '1'),
	} {
		_, ok := env.Storage.Get(key)
		assert.False(t, ok, "key %x", key)
	}

	events := transferEvents(h)
	requireNFTTransferArgs(t, events[len(events)-1], accA, types.H160{}, "t1")
}

func TestNEP11TokensPaging(t *testing.T) {
	h, tok := newNFT(t)
	for _, id := range []string{"a", "b", "c"} {
		id := id
		require.NoError(t, h.Invoke(func(env *host.Env) {
			NewNEP11(env).Mint(accA, []byte(id), nil)
		}))
	}

	page, next := tok.TokensOf(accA, nil, 2)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b")}, page)
	require.NotNil(t, next)
	page, next = tok.TokensOf(accA, next, 2)
	assert.Equal(t, [][]byte{[]byte("c")}, page)
	assert.Nil(t, next)

	all, next := tok.Tokens(nil, 10)
	assert.Len(t, all, 3)
	assert.Nil(t, next)
}

func TestNEP11TokenURI(t *testing.T) {
	h := memhost.New(withOwnerWitness())
	tok := NewNEP11(h.Env())
	require.NoError(t, h.Invoke(func(env *host.Env) {
		require.True(t, NewNEP11(env).Deploy(ownerAcc, "NFT", "https://cats.example/"))
		NewNEP11(env).Mint(accA, []byte("t1"), nil)
	}))
	assert.Equal(t, "https://cats.example/t1", tok.TokenURI([]byte("t1")))

	require.NoError(t, h.Invoke(func(env *host.Env) {
		NewNEP11(env).SetBaseURI("")
	}))
	assert.Equal(t, "t1", tok.TokenURI([]byte("t1")))

	require.NoError(t, h.Invoke(func(env *host.Env) {
		NewNEP11(env).SetBaseURI("ipfs://meta/")
	}))
	assert.Equal(t, "ipfs://meta/t1", tok.TokenURI([]byte("t1")))

	err := h.Invoke(func(env *host.Env) {
		NewNEP11(env).TokenURI([]byte("missing"))
	})
	require.Error(t, err)

	h.RemoveWitness(ownerAcc)
	err = h.Invoke(func(env *host.Env) {
		NewNEP11(env).SetBaseURI("x")
	})
	require.Error(t, err)
}

func TestNEP11PaymentCallback(t *testing.T) {
	h, tok := newNFT(t)
	target := acc(0x77)

	var gotArgs []stackitem.Item
	h.RegisterContract(target, func(env *host.Env, method string, args []stackitem.Item) stackitem.Item {
		require.Equal(t, "onNEP11Payment", method)
		gotArgs = args
		return stackitem.Null{}
	})
	h.AddWitness(accA)
	require.NoError(t, h.Invoke(func(env *host.Env) {
		NewNEP11(env).Mint(accA, []byte("t1"), nil)
		NewNEP11(env).Transfer(target, []byte("t1"), nil)
	}))
	assert.True(t, tok.OwnerOf([]byte("t1")).Equals(target))
	require.Len(t, gotArgs, 4)
	id, err := gotArgs[2].TryBytes()
	require.NoError(t, err)
	assert.Equal(t, "t1", string(id))
}
