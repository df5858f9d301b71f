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

func acc(b byte) types.H160 {
	var h types.H160
	h[0] = b
	return h
}

var (
	ownerAcc = acc(0x01)
	accA     = acc(0xaa)
	accB     = acc(0xbb)
	accC     = acc(0xcc)
)

// newFungible deploys a fungible token with a million units on the
// owner's balance and no cap.
func newFungible(t *testing.T) (*memhost.Host, *NEP17) {
	h := memhost.New(withOwnerWitness())
	tok := NewNEP17(h.Env())
	require.NoError(t, h.Invoke(func(env *host.Env) {
		require.True(t, NewNEP17(env).Deploy(ownerAcc, "TST", 8, types.NewInt256(1000000), types.Int256Zero()))
	}))
	return h, tok
}

// withOwnerWitness is a shorthand for tests acting as the owner.
func withOwnerWitness() memhost.Option {
	return memhost.WithWitness(ownerAcc)
}

func transferEvents(h *memhost.Host) []memhost.Notification {
	var res []memhost.Notification
	for _, n := range h.Notifications() {
		if n.Name == TransferEvent {
			res = append(res, n)
		}
	}
	return res
}

func requireTransferArgs(t *testing.T, n memhost.Notification, from, to types.H160, amount int64) {
	require.Len(t, n.Args, 3)
	gotFrom, err := stackitem.ToH160(n.Args[0])
	require.NoError(t, err)
	gotTo, err := stackitem.ToH160(n.Args[1])
	require.NoError(t, err)
	gotAmount, err := n.Args[2].TryInteger()
	require.NoError(t, err)
	assert.True(t, from.Equals(gotFrom))
	assert.True(t, to.Equals(gotTo))
	assert.True(t, types.NewInt256(amount).Equals(gotAmount))
}

func TestNEP17Deploy(t *testing.T) {
	h, tok := newFungible(t)

	assert.Equal(t, "TST", tok.Symbol())
	assert.Equal(t, uint8(8), tok.Decimals())
	assert.Equal(t, "1000000", tok.TotalSupply().String())
	assert.Equal(t, "1000000", tok.BalanceOf(ownerAcc).String())
	assert.True(t, tok.Owner().Equals(ownerAcc))
	assert.True(t, tok.MaxSupply().IsZero())

	events := transferEvents(h)
	require.Len(t, events, 1)
	requireTransferArgs(t, events[0], types.H160{}, ownerAcc, 1000000)

	// A second deploy is refused without touching state.
	require.NoError(t, h.Invoke(func(env *host.Env) {
		assert.False(t, NewNEP17(env).Deploy(ownerAcc, "OTHER", 0, types.Int256Zero(), types.Int256Zero()))
	}))
	assert.Equal(t, "TST", tok.Symbol())
}

func TestNEP17DeployRefusedWithoutWitness(t *testing.T) {
	h := memhost.New()
	require.NoError(t, h.Invoke(func(env *host.Env) {
		assert.False(t, NewNEP17(env).Deploy(ownerAcc, "TST", 8, types.Int256Zero(), types.Int256Zero()))
	}))
	assert.Empty(t, h.Notifications())
}

func TestNEP17DeployValidation(t *testing.T) {
	testCases := []struct {
		name string
		run  func(tok *NEP17)
	}{
		{"long symbol", func(tok *NEP17) {
			tok.Deploy(ownerAcc, "ELEVENCHARS", 8, types.Int256Zero(), types.Int256Zero())
		}},
		{"empty symbol", func(tok *NEP17) {
			tok.Deploy(ownerAcc, "", 8, types.Int256Zero(), types.Int256Zero())
		}},
		{"decimals", func(tok *NEP17) {
			tok.Deploy(ownerAcc, "TST", 19, types.Int256Zero(), types.Int256Zero())
		}},
		{"negative supply", func(tok *NEP17) {
			tok.Deploy(ownerAcc, "TST", 8, types.NewInt256(-1), types.Int256Zero())
		}},
		{"cap below supply", func(tok *NEP17) {
			tok.Deploy(ownerAcc, "TST", 8, types.NewInt256(100), types.NewInt256(99))
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := memhost.New(withOwnerWitness())
			err := h.Invoke(func(env *host.Env) {
				tc.run(NewNEP17(env))
			})
			require.Error(t, err)
		})
	}
}

func TestNEP17Transfer(t *testing.T) {
	h, tok := newFungible(t)
	h.AddWitness(accA)

	// Fund A with exactly 100.
	require.NoError(t, h.Invoke(func(env *host.Env) {
		NewNEP17(env).Transfer(ownerAcc, accA, types.NewInt256(100), nil)
	}))

	require.NoError(t, h.Invoke(func(env *host.Env) {
		assert.True(t, NewNEP17(env).Transfer(accA, accB, types.NewInt256(100), nil))
	}))

	assert.True(t, tok.BalanceOf(accA).IsZero())
	assert.Equal(t, "100", tok.BalanceOf(accB).String())

	// The emptied balance entry is removed from storage.
	_, ok := h.Env().Storage.Get(storage.BalanceKey(accA))
	assert.False(t, ok)

	events := transferEvents(h)
	require.Len(t, events, 3) // deploy mint + two transfers
	requireTransferArgs(t, events[2], accA, accB, 100)
}

func TestNEP17TransferInsufficientFunds(t *testing.T) {
	h, tok := newFungible(t)
	h.AddWitness(accA)
	require.NoError(t, h.Invoke(func(env *host.Env) {
		NewNEP17(env).Transfer(ownerAcc, accA, types.NewInt256(100), nil)
	}))
	before := len(h.Notifications())

	err := h.Invoke(func(env *host.Env) {
		NewNEP17(env).Transfer(accA, accB, types.NewInt256(101), nil)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient funds")

	assert.Equal(t, "100", tok.BalanceOf(accA).String())
	assert.True(t, tok.BalanceOf(accB).IsZero())
	assert.Len(t, h.Notifications(), before)
}

func TestNEP17TransferUnauthorized(t *testing.T) {
	h, tok := newFungible(t)

	err := h.Invoke(func(env *host.Env) {
		NewNEP17(env).Transfer(accA, accB, types.NewInt256(1), nil)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
	_ = tok
}

func TestNEP17TransferNoOps(t *testing.T) {
	h, tok := newFungible(t)
	before := len(h.Notifications())

	// Zero amount and self-transfer succeed without effects; neither
	// needs a witness.
	require.NoError(t, h.Invoke(func(env *host.Env) {
		assert.True(t, NewNEP17(env).Transfer(accA, accB, types.Int256Zero(), nil))
		assert.True(t, NewNEP17(env).Transfer(accA, accA, types.NewInt256(10), nil))
	}))
	assert.Len(t, h.Notifications(), before)
	assert.Equal(t, "1000000", tok.BalanceOf(ownerAcc).String())

	err := h.Invoke(func(env *host.Env) {
		NewNEP17(env).Transfer(ownerAcc, accA, types.NewInt256(-1), nil)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative amount")
}

func TestNEP17Pause(t *testing.T) {
	h, tok := newFungible(t)

	require.NoError(t, h.Invoke(func(env *host.Env) {
		assert.True(t, NewNEP17(env).Pause())
		assert.False(t, NewNEP17(env).Pause())
	}))
	assert.True(t, tok.IsPaused())

	err := h.Invoke(func(env *host.Env) {
		NewNEP17(env).Transfer(ownerAcc, accA, types.NewInt256(1), nil)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "paused")

	require.NoError(t, h.Invoke(func(env *host.Env) {
		assert.True(t, NewNEP17(env).Unpause())
		assert.False(t, NewNEP17(env).Unpause())
	}))
	require.NoError(t, h.Invoke(func(env *host.Env) {
		NewNEP17(env).Transfer(ownerAcc, accA, types.NewInt256(1), nil)
	}))

	// Only the owner may pause.
	h.RemoveWitness(ownerAcc)
	err = h.Invoke(func(env *host.Env) {
		NewNEP17(env).Pause()
	})
	require.Error(t, err)
}

func TestNEP17Mint(t *testing.T) {
	h, tok := newFungible(t)

	// Not a minter: no owner witness, no registered minter.
	h.RemoveWitness(ownerAcc)
	err := h.Invoke(func(env *host.Env) {
		NewNEP17(env).Mint(accC, types.NewInt256(50))
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")

	h.AddWitness(ownerAcc)
	require.NoError(t, h.Invoke(func(env *host.Env) {
		require.True(t, NewNEP17(env).AddMinter(accB))
		assert.False(t, NewNEP17(env).AddMinter(accB))
	}))
	assert.True(t, tok.IsMinter(accB))
	assert.True(t, tok.IsMinter(ownerAcc))
	assert.False(t, tok.IsMinter(accC))

	// The registered minter mints on its own witness.
	h.RemoveWitness(ownerAcc)
	h.AddWitness(accB)
	require.NoError(t, h.Invoke(func(env *host.Env) {
		NewNEP17(env).Mint(accC, types.NewInt256(50))
	}))
	assert.Equal(t, "50", tok.BalanceOf(accC).String())
	assert.Equal(t, "1000050", tok.TotalSupply().String())

	events := transferEvents(h)
	requireTransferArgs(t, events[len(events)-1], types.H160{}, accC, 50)

	// Removal revokes the right.
	h.AddWitness(ownerAcc)
	require.NoError(t, h.Invoke(func(env *host.Env) {
		require.True(t, NewNEP17(env).RemoveMinter(accB))
		assert.False(t, NewNEP17(env).RemoveMinter(accB))
	}))
	h.RemoveWitness(ownerAcc)
	err = h.Invoke(func(env *host.Env) {
		NewNEP17(env).Mint(accC, types.NewInt256(1))
	})
	require.Error(t, err)
}

func TestNEP17MaxSupply(t *testing.T) {
	h := memhost.New(withOwnerWitness())
	require.NoError(t, h.Invoke(func(env *host.Env) {
		require.True(t, NewNEP17(env).Deploy(ownerAcc, "CAP", 0, types.NewInt256(90), types.NewInt256(100)))
	}))

	require.NoError(t, h.Invoke(func(env *host.Env) {
		NewNEP17(env).Mint(accA, types.NewInt256(10))
	}))

	err := h.Invoke(func(env *host.Env) {
		NewNEP17(env).Mint(accA, types.Int256One())
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max supply")
}

func TestNEP17Burn(t *testing.T) {
	h, tok := newFungible(t)

	require.NoError(t, h.Invoke(func(env *host.Env) {
		NewNEP17(env).Burn(ownerAcc, types.NewInt256(400))
	}))
	assert.Equal(t, "999600", tok.TotalSupply().String())
	assert.Equal(t, "999600", tok.BalanceOf(ownerAcc).String())

	events := transferEvents(h)
	requireTransferArgs(t, events[len(events)-1], ownerAcc, types.H160{}, 400)

	err := h.Invoke(func(env *host.Env) {
		NewNEP17(env).Burn(ownerAcc, types.NewInt256(10000000))
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient funds")

	// Burning someone else's tokens needs their witness or the owner's.
	h.AddWitness(accA)
	require.NoError(t, h.Invoke(func(env *host.Env) {
		NewNEP17(env).Transfer(ownerAcc, accA, types.NewInt256(10), nil)
	}))
	h.RemoveWitness(ownerAcc)
	h.RemoveWitness(accA)
	err = h.Invoke(func(env *host.Env) {
		NewNEP17(env).Burn(accA, types.Int256One())
	})
	require.Error(t, err)
}

func TestNEP17Allowance(t *testing.T) {
	h, tok := newFungible(t)
	h.AddWitness(accB)

	assert.True(t, tok.Allowance(ownerAcc, accB).IsZero())

	require.NoError(t, h.Invoke(func(env *host.Env) {
		assert.True(t, NewNEP17(env).Approve(ownerAcc, accB, types.NewInt256(300)))
	}))
	assert.Equal(t, "300", tok.Allowance(ownerAcc, accB).String())

	// The spender moves part of the allowance.
	h.RemoveWitness(ownerAcc)
	require.NoError(t, h.Invoke(func(env *host.Env) {
		assert.True(t, NewNEP17(env).TransferFrom(accB, ownerAcc, accC, types.NewInt256(100), nil))
	}))
	assert.Equal(t, "200", tok.Allowance(ownerAcc, accB).String())
	assert.Equal(t, "100", tok.BalanceOf(accC).String())

	// Exceeding what is left aborts without moving anything.
	err := h.Invoke(func(env *host.Env) {
		NewNEP17(env).TransferFrom(accB, ownerAcc, accC, types.NewInt256(201), nil)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient allowance")
	assert.Equal(t, "100", tok.BalanceOf(accC).String())

	// Draining the allowance removes the entry.
	require.NoError(t, h.Invoke(func(env *host.Env) {
		NewNEP17(env).TransferFrom(accB, ownerAcc, accC, types.NewInt256(200), nil)
	}))
	assert.True(t, tok.Allowance(ownerAcc, accB).IsZero())

	// Approvals need the owner's witness.
	err = h.Invoke(func(env *host.Env) {
		NewNEP17(env).Approve(ownerAcc, accB, types.NewInt256(5))
	})
	require.Error(t, err)
}

func TestNEP17PaymentCallback(t *testing.T) {
	h, tok := newFungible(t)
	target := acc(0x77)

	var gotMethod string
	var gotArgs []stackitem.Item
	h.RegisterContract(target, func(env *host.Env, method string, args []stackitem.Item) stackitem.Item {
		gotMethod = method
		gotArgs = args
		return stackitem.Null{}
	})

	require.NoError(t, h.Invoke(func(env *host.Env) {
		NewNEP17(env).Transfer(ownerAcc, target, types.NewInt256(25), stackitem.Make("memo"))
	}))
	assert.Equal(t, "onNEP17Payment", gotMethod)
	require.Len(t, gotArgs, 3)
	from, err := stackitem.ToH160(gotArgs[0])
	require.NoError(t, err)
	assert.True(t, ownerAcc.Equals(from))
	amount, err := gotArgs[1].TryInteger()
	require.NoError(t, err)
	assert.Equal(t, "25", amount.String())
	memo, err := gotArgs[2].TryBytes()
	require.NoError(t, err)
	assert.Equal(t, "memo", string(memo))
	assert.Equal(t, "25", tok.BalanceOf(target).String())
}

func TestNEP17CallbackFaultAbortsTransfer(t *testing.T) {
	h, tok := newFungible(t)
	target := acc(0x77)
	h.RegisterContract(target, func(env *host.Env, method string, args []stackitem.Item) stackitem.Item {
		host.Abort("payment refused")
		return nil
	})
	before := len(h.Notifications())

	err := h.Invoke(func(env *host.Env) {
		NewNEP17(env).Transfer(ownerAcc, target, types.NewInt256(25), nil)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment refused")

	// The transfer and its event are fully rolled back.
	assert.True(t, tok.BalanceOf(target).IsZero())
	assert.Equal(t, "1000000", tok.BalanceOf(ownerAcc).String())
	assert.Len(t, h.Notifications(), before)
}
