package token

import (
	"github.com/epicchainlabs/epicchain-contract-go/pkg/host"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/stackitem"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/types"
)

// Event names emitted by the templates. Transfer is the wire-exact
// standard event; the rest mirror administrative actions.
const (
	TransferEvent         = "Transfer"
	ApprovalEvent         = "Approval"
	TokenDeployedEvent    = "TokenDeployed"
	TokensMintedEvent     = "TokensMinted"
	TokensBurnedEvent     = "TokensBurned"
	MinterAddedEvent      = "MinterAdded"
	MinterRemovedEvent    = "MinterRemoved"
	ContractPausedEvent   = "ContractPaused"
	ContractUnpausedEvent = "ContractUnpaused"
)

// postTransfer emits the standard Transfer notification and invokes
// the payment callback when the recipient is a contract. A faulting
// callee unwinds through the transfer, so the event never outlives a
// failed callback.
func (t *base) postTransfer(from, to types.H160, amount types.Int256, tokenID []byte, callback string, data stackitem.Item) {
	args := []stackitem.Item{
		stackitem.Make(from),
		stackitem.Make(to),
		stackitem.Make(amount),
	}
	cbArgs := []stackitem.Item{
		stackitem.Make(from),
		stackitem.Make(amount),
	}
	if tokenID != nil {
		args = append(args, stackitem.Make(tokenID))
		cbArgs = append(cbArgs, stackitem.Make(tokenID))
	}
	if data == nil {
		data = stackitem.Null{}
	}
	cbArgs = append(cbArgs, data)
	t.env.Runtime.Notify(TransferEvent, args)
	if !to.IsZero() && t.env.Contracts.IsContract(to) {
		t.env.Contracts.Call(to, callback, host.All, cbArgs)
	}
}

func (t *base) notify(name string, args ...any) {
	items := make([]stackitem.Item, len(args))
	for i := range args {
		items[i] = stackitem.Make(args[i])
	}
	t.env.Runtime.Notify(name, items)
}
