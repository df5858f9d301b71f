package host

// Trigger represents the trigger a contract is invoked with.
type Trigger byte

// This block defines all known trigger types.
const (
	// OnPersist triggers execution before block persistence.
	OnPersist Trigger = 0x01
	// PostPersist triggers execution after block persistence.
	PostPersist Trigger = 0x02
	// Verification triggers execution as part of transaction
	// verification; state changes are not available.
	Verification Trigger = 0x20
	// Application is the regular trigger of a transaction script.
	Application Trigger = 0x40
)

// String implements the fmt.Stringer interface.
func (t Trigger) String() string {
	switch t {
	case OnPersist:
		return "OnPersist"
	case PostPersist:
		return "PostPersist"
	case Verification:
		return "Verification"
	case Application:
		return "Application"
	default:
		return "UNKNOWN"
	}
}
