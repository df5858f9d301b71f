package memhost

import (
	"bytes"
	"sort"

	"github.com/epicchainlabs/epicchain-contract-go/pkg/crypto/hash"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/host"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/stackitem"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/types"
)

// Verification script opcodes and syscall identifiers used to derive
// account script hashes.
const (
	opPushData1 = 0x0c
	opPushInt8  = 0x00
	opSyscall   = 0x41
)

var (
	checkSigID      = []byte{0x56, 0xe7, 0xb3, 0x27}
	checkMultisigID = []byte{0x38, 0x7d, 0xa3, 0x0a}
)

// hostContracts adapts Host to the host.Contracts interface.
type hostContracts Host

// Call implements the host.Contracts interface. The handler runs with
// the callee reported as the executing contract and the caller as the
// calling one; a fault inside the handler unwinds through the caller.
func (h *hostContracts) Call(target types.H160, method string, flags host.CallFlag, args []stackitem.Item) stackitem.Item {
	fn, ok := h.contracts[target]
	if !ok {
		host.Abortf("call to %s: %s", target, ErrNoContract)
	}
	prevCalling, prevExecuting := h.calling, h.executing
	h.calling, h.executing = h.executing, target
	defer func() {
		h.calling, h.executing = prevCalling, prevExecuting
	}()
	return fn((*Host)(h).Env(), method, args)
}

// IsContract implements the host.Contracts interface.
func (h *hostContracts) IsContract(u types.H160) bool {
	_, ok := h.contracts[u]
	return ok
}

// CreateStandardAccount implements the host.Contracts interface.
func (h *hostContracts) CreateStandardAccount(pub []byte) types.H160 {
	script := pushData(nil, pub)
	script = append(script, opSyscall)
	script = append(script, checkSigID...)
	return hash.Hash160(script)
}

// CreateMultisigAccount implements the host.Contracts interface. Keys
// are sorted before the script is built, so key order does not change
// the account.
func (h *hostContracts) CreateMultisigAccount(m int, pubs [][]byte) types.H160 {
	if m < 1 || m > len(pubs) {
		host.Abortf("invalid multisig threshold %d of %d", m, len(pubs))
	}
	sorted := make([][]byte, len(pubs))
	copy(sorted, pubs)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i], sorted[j]) < 0
	})
	script := []byte{opPushInt8, byte(m)}
	for _, pub := range sorted {
		script = pushData(script, pub)
	}
	script = append(script, opPushInt8, byte(len(pubs)), opSyscall)
	script = append(script, checkMultisigID...)
	return hash.Hash160(script)
}

func pushData(script, data []byte) []byte {
	script = append(script, opPushData1, byte(len(data)))
	return append(script, data...)
}
