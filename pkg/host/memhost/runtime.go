package memhost

import (
	"encoding/hex"

	"github.com/epicchainlabs/epicchain-contract-go/pkg/host"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/stackitem"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/types"
	"go.uber.org/zap"
)

// hostRuntime adapts Host to the host.Runtime interface.
type hostRuntime Host

// Trigger implements the host.Runtime interface.
func (h *hostRuntime) Trigger() host.Trigger {
	return h.trigger
}

// Time implements the host.Runtime interface.
func (h *hostRuntime) Time() uint64 {
	return h.time
}

// ExecutingScriptHash implements the host.Runtime interface.
func (h *hostRuntime) ExecutingScriptHash() types.H160 {
	return h.executing
}

// CallingScriptHash implements the host.Runtime interface.
func (h *hostRuntime) CallingScriptHash() types.H160 {
	return h.calling
}

// CheckWitness implements the host.Runtime interface.
func (h *hostRuntime) CheckWitness(u types.H160) bool {
	return h.witnesses[u]
}

// Notify implements the host.Runtime interface. The event is kept in
// the captured list; a later fault of the same invocation drops it.
func (h *hostRuntime) Notify(name string, args []stackitem.Item) {
	h.notifications = append(h.notifications, Notification{
		ScriptHash: h.executing,
		Name:       name,
		Args:       args,
	})
	h.logger.Debug("notification",
		zap.String("contract", h.executing.String()),
		zap.String("name", name),
		zap.Int("args", len(args)))
}

// Log implements the host.Runtime interface.
func (h *hostRuntime) Log(msg string) {
	h.logs = append(h.logs, msg)
	h.logger.Info("contract log",
		zap.String("contract", h.executing.String()),
		zap.String("msg", msg))
}

// GasLeft implements the host.Runtime interface.
func (h *hostRuntime) GasLeft() types.Int256 {
	return h.gas
}

func zapKey(key []byte) zap.Field {
	return zap.String("key", hex.EncodeToString(key))
}

func zapVal(value []byte) zap.Field {
	return zap.String("value", hex.EncodeToString(value))
}
