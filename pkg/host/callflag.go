package host

// CallFlag represents a call flag restricting what a cross-contract
// call is allowed to do.
type CallFlag byte

// Default flags.
const (
	// ReadStates allows the callee to read chain state.
	ReadStates CallFlag = 1 << 0
	// WriteStates allows the callee to modify chain state.
	WriteStates CallFlag = 1 << 1
	// AllowCall allows the callee to make calls of its own.
	AllowCall CallFlag = 1 << 2
	// AllowNotify allows the callee to emit notifications.
	AllowNotify CallFlag = 1 << 3
	// States is a combination of ReadStates and WriteStates.
	States = ReadStates | WriteStates
	// ReadOnly is a combination of ReadStates and AllowCall.
	ReadOnly = ReadStates | AllowCall
	// All is a combination of all flags.
	All = States | AllowCall | AllowNotify
	// NoneFlag is an empty flag set.
	NoneFlag CallFlag = 0
)

// Has returns true if all the flags specified in cf are set in f.
func (f CallFlag) Has(cf CallFlag) bool {
	return f&cf == cf
}
