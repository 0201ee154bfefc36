package nbt

import (
	"fmt"

	"github.com/pkg/errors"
)

// Type identifies the kind of payload a Tag carries. The numeric values are
// the type bytes used on the wire.
type Type uint8

const (
	TypeEnd Type = iota
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeFloat32
	TypeFloat64
	TypeByteArray8
	TypeString
	TypeList
	TypeObject
	TypeByteArray32
	TypeByteArray64
)

const (
	// MaxStringLen is the longest string or key the uint16 length prefix can
	// describe.
	MaxStringLen = 0xffff

	// MaxArrayLen is the largest element count an int32 count prefix can
	// describe.
	MaxArrayLen = 0x7fffffff
)

var typeNames = [...]string{
	TypeEnd:         "end",
	TypeInt8:        "int8",
	TypeInt16:       "int16",
	TypeInt32:       "int32",
	TypeInt64:       "int64",
	TypeFloat32:     "float32",
	TypeFloat64:     "float64",
	TypeByteArray8:  "bytearray8",
	TypeString:      "string",
	TypeList:        "list",
	TypeObject:      "object",
	TypeByteArray32: "bytearray32",
	TypeByteArray64: "bytearray64",
}

// Valid reports whether t is a type byte the format defines, End included.
func (t Type) Valid() bool {
	return t <= TypeByteArray64
}

func (t Type) IsContainer() bool {
	return t == TypeList || t == TypeObject
}

func (t Type) IsArray() bool {
	return t == TypeByteArray8 || t == TypeByteArray32 || t == TypeByteArray64
}

// elemWidth returns the width in bytes of a single array element, or of the
// scalar itself for fixed-width scalar types. It returns 0 for everything
// else.
func (t Type) elemWidth() int {
	switch t {
	case TypeInt8, TypeByteArray8:
		return 1
	case TypeInt16:
		return 2
	case TypeInt32, TypeFloat32, TypeByteArray32:
		return 4
	case TypeInt64, TypeFloat64, TypeByteArray64:
		return 8
	default:
		return 0
	}
}

// minPayloadLen is the fewest bytes a payload of type t can occupy on the
// wire. The reader uses it to reject list counts the input cannot hold before
// building any nodes.
func (t Type) minPayloadLen() int {
	switch t {
	case TypeString:
		return 2
	case TypeByteArray8, TypeByteArray32, TypeByteArray64:
		return 4
	case TypeList:
		return 5
	case TypeObject:
		return 1
	default:
		return t.elemWidth()
	}
}

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("type(0x%02x)", uint8(t))
	}
	return typeNames[t]
}

// ParseType returns the Type with the given name as printed by Type.String.
func ParseType(name string) (Type, error) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return TypeEnd, errors.Wrapf(ErrInvalidType, "unknown type name %q", name)
}
