package nbt

import (
	"encoding/binary"
	"math"
)

// payload is the value carried by a non-container Tag. Exactly one variant
// is active and it always agrees with the Tag's type.
type payload interface {
	isPayload()
}

type (
	int8Value    int8
	int16Value   int16
	int32Value   int32
	int64Value   int64
	float32Value uint32
	float64Value uint64

	// stringValue holds the raw string bytes. Its length is authoritative.
	stringValue []byte

	// arrayValue holds the array elements back to back in little-endian
	// order, independent of the byte order used on the wire.
	arrayValue []byte
)

func (int8Value) isPayload()    {}
func (int16Value) isPayload()   {}
func (int32Value) isPayload()   {}
func (int64Value) isPayload()   {}
func (float32Value) isPayload() {}
func (float64Value) isPayload() {}
func (stringValue) isPayload()  {}
func (arrayValue) isPayload()   {}

// Tag is one node of a tree.
//
// A Tag owns its key, its payload buffer and all of its children. A Tag with
// a parent is attached; it must be removed before it can be added to another
// container.
type Tag struct {
	typ      Type
	key      string
	hasKey   bool
	elemType Type
	value    payload
	parent   *Tag
	children []*Tag
	alloc    Allocator
}

func newTag(t Type, a Allocator) *Tag {
	tag := &Tag{
		typ:   t,
		alloc: a,
	}
	tag.value = zeroPayload(t)
	return tag
}

func zeroPayload(t Type) payload {
	switch t {
	case TypeInt8:
		return int8Value(0)
	case TypeInt16:
		return int16Value(0)
	case TypeInt32:
		return int32Value(0)
	case TypeInt64:
		return int64Value(0)
	case TypeFloat32:
		return float32Value(0)
	case TypeFloat64:
		return float64Value(0)
	case TypeString:
		return stringValue(nil)
	case TypeByteArray8, TypeByteArray32, TypeByteArray64:
		return arrayValue(nil)
	default:
		return nil
	}
}

func (t *Tag) allocator() Allocator {
	if t.alloc == nil {
		return GetAllocator()
	}
	return t.alloc
}

// Type returns the tag's type, or TypeEnd for a nil or deleted tag.
func (t *Tag) Type() Type {
	if t == nil {
		return TypeEnd
	}
	return t.typ
}

// Key returns the tag's key. The second return value is false when the tag
// has no key, which is the case for list elements and detached tags that
// were never keyed.
func (t *Tag) Key() (string, bool) {
	if t == nil {
		return "", false
	}
	return t.key, t.hasKey
}

// ElementType returns the declared element type of a list, or TypeEnd for
// anything else.
func (t *Tag) ElementType() Type {
	if t == nil || t.typ != TypeList {
		return TypeEnd
	}
	return t.elemType
}

func (t *Tag) Parent() *Tag {
	if t == nil {
		return nil
	}
	return t.parent
}

// Attached reports whether the tag is a child of some container.
func (t *Tag) Attached() bool {
	return t != nil && t.parent != nil
}

// Len returns the number of children of a list or object, or the element
// count of an array. It returns 0 for everything else.
func (t *Tag) Len() int {
	if t == nil {
		return 0
	}
	if t.typ.IsContainer() {
		return len(t.children)
	}
	if v, ok := t.value.(arrayValue); ok {
		return len(v) / t.typ.elemWidth()
	}
	return 0
}

// Children returns a copy of the container's child list.
func (t *Tag) Children() []*Tag {
	if t == nil || len(t.children) == 0 {
		return nil
	}
	out := make([]*Tag, len(t.children))
	copy(out, t.children)
	return out
}

// First returns the first child of a container.
func (t *Tag) First() *Tag {
	if t == nil || len(t.children) == 0 {
		return nil
	}
	return t.children[0]
}

// Last returns the last child of a container.
func (t *Tag) Last() *Tag {
	if t == nil || len(t.children) == 0 {
		return nil
	}
	return t.children[len(t.children)-1]
}

// Next returns the following sibling, or nil for the last child and for
// detached tags.
func (t *Tag) Next() *Tag {
	i := t.index()
	if i < 0 || i+1 >= len(t.parent.children) {
		return nil
	}
	return t.parent.children[i+1]
}

// Prev returns the preceding sibling, or nil for the first child and for
// detached tags.
func (t *Tag) Prev() *Tag {
	i := t.index()
	if i <= 0 {
		return nil
	}
	return t.parent.children[i-1]
}

func (t *Tag) index() int {
	if t == nil || t.parent == nil {
		return -1
	}
	for i, c := range t.parent.children {
		if c == t {
			return i
		}
	}
	return -1
}

func (t *Tag) isAncestorOf(other *Tag) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == t {
			return true
		}
	}
	return false
}

func putArrayElem(buf []byte, width int, i int, v int64) {
	switch width {
	case 1:
		buf[i] = byte(v)
	case 4:
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	case 8:
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(v))
	}
}

func arrayElem(buf []byte, width int, i int) int64 {
	switch width {
	case 1:
		return int64(int8(buf[i]))
	case 4:
		return int64(int32(binary.LittleEndian.Uint32(buf[i*4:])))
	case 8:
		return int64(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return 0
}

func float32Bits(f float32) float32Value {
	return float32Value(math.Float32bits(f))
}

func float64Bits(f float64) float64Value {
	return float64Value(math.Float64bits(f))
}
