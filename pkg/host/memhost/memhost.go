/*
Package memhost is an in-memory implementation of the host capability
surface. It backs contract unit tests: storage lives in a map,
witnesses are an allowlist, notifications and log lines are captured
for inspection, and Invoke gives every invocation the all-or-nothing
semantics a real chain provides.
*/
package memhost

import (
	"errors"
	"math/rand"

	"github.com/epicchainlabs/epicchain-contract-go/pkg/host"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/stackitem"
	"github.com/epicchainlabs/epicchain-contract-go/pkg/types"
	"go.uber.org/zap"
)

// ContractFunc is a handler for a registered contract. It runs inside
// the calling invocation, so a fault raised by it aborts the caller as
// well.
type ContractFunc func(env *host.Env, method string, args []stackitem.Item) stackitem.Item

// Notification is a single captured event.
type Notification struct {
	ScriptHash types.H160
	Name       string
	Args       []stackitem.Item
}

// Host is an in-memory chain environment. The zero value is not
// usable, construct it with New.
type Host struct {
	store         *memStore
	notifications []Notification
	logs          []string

	trigger   host.Trigger
	time      uint64
	executing types.H160
	calling   types.H160
	gas       types.Int256
	witnesses map[types.H160]bool

	signedPayload []byte
	rng           *rand.Rand

	contracts map[types.H160]ContractFunc

	logger *zap.Logger
}

// Option configures a Host on creation.
type Option func(*Host)

// WithTrigger sets the trigger invocations run with. The default is
// Application.
func WithTrigger(t host.Trigger) Option {
	return func(h *Host) { h.trigger = t }
}

// WithTime sets the block timestamp in milliseconds.
func WithTime(t uint64) Option {
	return func(h *Host) { h.time = t }
}

// WithExecutingHash sets the hash of the contract under test.
func WithExecutingHash(u types.H160) Option {
	return func(h *Host) { h.executing = u }
}

// WithCallingHash sets the hash reported as the direct caller.
func WithCallingHash(u types.H160) Option {
	return func(h *Host) { h.calling = u }
}

// WithWitness adds the given hashes to the set CheckWitness approves.
func WithWitness(us ...types.H160) Option {
	return func(h *Host) {
		for _, u := range us {
			h.witnesses[u] = true
		}
	}
}

// WithGas sets the gas amount reported by GasLeft.
func WithGas(g types.Int256) Option {
	return func(h *Host) { h.gas = g }
}

// WithSeed seeds the Random sequence. Hosts with the same seed produce
// the same sequence.
func WithSeed(seed int64) Option {
	return func(h *Host) { h.rng = rand.New(rand.NewSource(seed)) }
}

// WithSignedPayload sets the payload CheckSig and CheckMultisig verify
// signatures against.
func WithSignedPayload(data []byte) Option {
	return func(h *Host) { h.signedPayload = data }
}

// WithLogger sets the logger used for Log output and storage tracing.
// The default logger discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(h *Host) { h.logger = l }
}

// New returns a Host configured with the given options.
func New(opts ...Option) *Host {
	h := &Host{
		store:     newMemStore(),
		trigger:   host.Application,
		witnesses: make(map[types.H160]bool),
		contracts: make(map[types.H160]ContractFunc),
		rng:       rand.New(rand.NewSource(0)),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Env returns the capability bundle contract code runs against. All
// four surfaces are backed by h.
func (h *Host) Env() *host.Env {
	return &host.Env{
		Storage:   (*hostStorage)(h),
		Runtime:   (*hostRuntime)(h),
		Crypto:    (*hostCrypto)(h),
		Contracts: (*hostContracts)(h),
	}
}

// Invoke runs fn as a single invocation. If fn aborts, every storage
// mutation and notification it produced is rolled back and the fault
// is returned as an error. Panics that are not faults propagate.
func (h *Host) Invoke(fn func(env *host.Env)) (err error) {
	snap := h.store.snapshot()
	notifLen := len(h.notifications)
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		f, ok := r.(*host.Fault)
		if !ok {
			panic(r)
		}
		h.store.restore(snap)
		h.notifications = h.notifications[:notifLen]
		h.logger.Debug("invocation aborted", zap.String("reason", f.Msg))
		err = f
	}()
	fn(h.Env())
	return nil
}

// RegisterContract installs a handler reachable through the Contracts
// surface at the given hash. Handlers run against the same flat store
// as the contract under test, there is no per-contract isolation.
func (h *Host) RegisterContract(u types.H160, fn ContractFunc) {
	h.contracts[u] = fn
}

// AddWitness adds the given hash to the set CheckWitness approves.
func (h *Host) AddWitness(u types.H160) {
	h.witnesses[u] = true
}

// RemoveWitness removes the given hash from the witness set.
func (h *Host) RemoveWitness(u types.H160) {
	delete(h.witnesses, u)
}

// SetTime updates the block timestamp.
func (h *Host) SetTime(t uint64) {
	h.time = t
}

// Notifications returns the events captured so far, in emission order.
func (h *Host) Notifications() []Notification {
	return h.notifications
}

// Logs returns the log lines captured so far.
func (h *Host) Logs() []string {
	return h.logs
}

// ErrNoContract is returned through a fault when a Call targets a hash
// with no registered handler.
var ErrNoContract = errors.New("no such contract")
