package stackitem

import "errors"

// Type represents the type of a stack item.
type Type byte

// This block defines all known stack item types.
const (
	AnyT       Type = 0x00
	BooleanT   Type = 0x20
	IntegerT   Type = 0x21
	ByteArrayT Type = 0x28
	BufferT    Type = 0x30
	ArrayT     Type = 0x40
	MapT       Type = 0x48
	InteropT   Type = 0x60
	InvalidT   Type = 0xFF
)

// String implements the fmt.Stringer interface.
func (t Type) String() string {
	switch t {
	case AnyT:
		return "Any"
	case BooleanT:
		return "Boolean"
	case IntegerT:
		return "Integer"
	case ByteArrayT:
		return "ByteString"
	case BufferT:
		return "Buffer"
	case ArrayT:
		return "Array"
	case MapT:
		return "Map"
	case InteropT:
		return "Interop"
	default:
		return "INVALID"
	}
}

// IsValid checks if t is a well defined stack item type.
func (t Type) IsValid() bool {
	switch t {
	case AnyT, BooleanT, IntegerT, ByteArrayT, BufferT, ArrayT, MapT, InteropT:
		return true
	default:
		return false
	}
}

// FromString returns the stack item type from a string.
func FromString(s string) (Type, error) {
	switch s {
	case "Any":
		return AnyT, nil
	case "Boolean":
		return BooleanT, nil
	case "Integer":
		return IntegerT, nil
	case "ByteString":
		return ByteArrayT, nil
	case "Buffer":
		return BufferT, nil
	case "Array":
		return ArrayT, nil
	case "Map":
		return MapT, nil
	case "Interop":
		return InteropT, nil
	default:
		return InvalidT, errors.New("invalid type")
	}
}
