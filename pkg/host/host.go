/*
Package host defines the capability surface the host VM exposes to
contract code: storage, runtime services, cryptography and
cross-contract invocation. Contract templates are written against
these interfaces only; on a real chain they are backed by system
calls, while unit tests run them against the in-memory backend in the
memhost subpackage.
*/
package host

import (
	"fmt"

	"github.com/epicchainlabs/epicchain-contract-go/pkg/stackitem"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/types"
)

// FindFlags alters the behavior of a storage Find operation.
type FindFlags byte

// This block defines all known find options.
const (
	FindDefault      FindFlags = 0
	FindKeysOnly     FindFlags = 1 << 0
	FindRemovePrefix FindFlags = 1 << 1
	FindValuesOnly   FindFlags = 1 << 2
	FindBackwards    FindFlags = 1 << 7
)

// Iterator is a cursor over the results of a Find. It starts
// positioned before the first result; every successful Next advances
// it by one entry.
type Iterator interface {
	// Next advances the iterator and reports whether an entry is
	// available.
	Next() bool
	// Key returns the key of the current entry. It is nil when the
	// find was performed with FindValuesOnly.
	Key() []byte
	// Value returns the value of the current entry. It is nil when
	// the find was performed with FindKeysOnly.
	Value() []byte
}

// Storage is the contract's persistent key-value store with keys
// sorted lexicographically. On a chain every contract gets an
// isolated namespace; test backends may run all registered handlers
// against one shared store.
type Storage interface {
	// Get retrieves the value stored for the given key.
	Get(key []byte) ([]byte, bool)
	// Put saves the given value for the given key.
	Put(key, value []byte)
	// Delete removes the key-value pair for the given key.
	Delete(key []byte)
	// Find returns an iterator over key-value pairs whose keys start
	// with the given prefix, in lexicographic key order.
	Find(prefix []byte, flags FindFlags) Iterator
}

// Runtime gives access to the execution environment of the current
// invocation.
type Runtime interface {
	// Trigger returns the trigger the contract is running with.
	Trigger() Trigger
	// Time returns the timestamp of the block being processed, in
	// milliseconds since the Unix epoch.
	Time() uint64
	// ExecutingScriptHash returns the script hash of the contract
	// being executed.
	ExecutingScriptHash() types.H160
	// CallingScriptHash returns the script hash of the calling
	// contract, or the zero hash for a direct invocation.
	CallingScriptHash() types.H160
	// CheckWitness reports whether the given script hash is one of
	// the signers of the current transaction.
	CheckWitness(h types.H160) bool
	// Notify appends a structured event with the given name and
	// payload to the transaction's event log.
	Notify(name string, args []stackitem.Item)
	// Log records a diagnostic message. Log output is not part of
	// the chain state.
	Log(msg string)
	// GasLeft returns the amount of gas available for the rest of
	// the execution.
	GasLeft() types.Int256
}

// Crypto exposes the host's cryptographic checks.
type Crypto interface {
	// CheckSig verifies a signature of the current invocation's
	// signed payload against the given public key.
	CheckSig(pub, sig []byte) bool
	// CheckMultisig verifies a set of signatures against a set of
	// public keys: every signature must match a key, keys are
	// consumed in order.
	CheckMultisig(pubs, sigs [][]byte) bool
	// Random returns the next value of the invocation-seeded random
	// sequence.
	Random() types.Int256
}

// Contracts exposes cross-contract invocation and account script
// helpers.
type Contracts interface {
	// Call invokes the named method of the target contract with the
	// given arguments and call flags and returns its result. A fault
	// in the callee aborts the calling invocation too.
	Call(target types.H160, method string, flags CallFlag, args []stackitem.Item) stackitem.Item
	// IsContract reports whether a contract is deployed at the given
	// hash.
	IsContract(h types.H160) bool
	// CreateStandardAccount returns the script hash of the
	// single-signature account for the given public key.
	CreateStandardAccount(pub []byte) types.H160
	// CreateMultisigAccount returns the script hash of the m-of-n
	// multisignature account for the given public keys.
	CreateMultisigAccount(m int, pubs [][]byte) types.H160
}

// Env bundles the full capability surface one invocation runs
// against.
type Env struct {
	Storage   Storage
	Runtime   Runtime
	Crypto    Crypto
	Contracts Contracts
}

// Fault is the abort of an invocation. It discards every storage
// mutation and notification of the invocation; recovery happens only
// at the invocation boundary, never in contract code.
type Fault struct {
	Msg string
}

// Error implements the error interface.
func (f *Fault) Error() string {
	return "fault: " + f.Msg
}

// Abort aborts the current invocation with the given message.
func Abort(msg string) {
	panic(&Fault{Msg: msg})
}

// Abortf aborts the current invocation with a formatted message.
func Abortf(format string, args ...any) {
	panic(&Fault{Msg: fmt.Sprintf(format, args...)})
}
