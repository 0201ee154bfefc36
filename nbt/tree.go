package nbt

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// NewTag returns a detached tag of type t holding the zero value for that
// type. Containers start out empty; lists start with no declared element
// type.
func NewTag(t Type) (*Tag, error) {
	if t == TypeEnd || !t.Valid() {
		return nil, errors.Wrapf(ErrInvalidType, "cannot create tag of %s", t)
	}
	return newTag(t, GetAllocator()), nil
}

func NewInt8(v int8) *Tag {
	t := newTag(TypeInt8, GetAllocator())
	t.value = int8Value(v)
	return t
}

func NewInt16(v int16) *Tag {
	t := newTag(TypeInt16, GetAllocator())
	t.value = int16Value(v)
	return t
}

func NewInt32(v int32) *Tag {
	t := newTag(TypeInt32, GetAllocator())
	t.value = int32Value(v)
	return t
}

func NewInt64(v int64) *Tag {
	t := newTag(TypeInt64, GetAllocator())
	t.value = int64Value(v)
	return t
}

func NewFloat32(v float32) *Tag {
	t := newTag(TypeFloat32, GetAllocator())
	t.value = float32Bits(v)
	return t
}

func NewFloat64(v float64) *Tag {
	t := newTag(TypeFloat64, GetAllocator())
	t.value = float64Bits(v)
	return t
}

func NewString(s string) (*Tag, error) {
	t := newTag(TypeString, GetAllocator())
	if err := t.SetString(s); err != nil {
		return nil, err
	}
	return t, nil
}

func NewByteArray8(v []int8) (*Tag, error) {
	t := newTag(TypeByteArray8, GetAllocator())
	if err := t.SetByteArray8(v); err != nil {
		return nil, err
	}
	return t, nil
}

func NewByteArray32(v []int32) (*Tag, error) {
	t := newTag(TypeByteArray32, GetAllocator())
	if err := t.SetByteArray32(v); err != nil {
		return nil, err
	}
	return t, nil
}

func NewByteArray64(v []int64) (*Tag, error) {
	t := newTag(TypeByteArray64, GetAllocator())
	if err := t.SetByteArray64(v); err != nil {
		return nil, err
	}
	return t, nil
}

// NewList returns an empty list whose elements must be of type elem.
func NewList(elem Type) (*Tag, error) {
	t := newTag(TypeList, GetAllocator())
	if err := t.SetListElementType(elem); err != nil {
		return nil, err
	}
	return t, nil
}

func NewObject() *Tag {
	return newTag(TypeObject, GetAllocator())
}

// Add appends item to the container t. For objects, key becomes the item's
// key and must not already be present. For lists, key is ignored, the item's
// type must equal the list's element type and any key the item held is
// dropped. On failure neither t nor item is modified.
func (t *Tag) Add(item *Tag, key string) error {
	if t == nil || item == nil {
		return ErrNilTag
	}
	switch t.typ {
	case TypeObject:
		if len(key) > MaxStringLen {
			return errors.Wrapf(ErrKeyTooLong, "key is %d bytes", len(key))
		}
		if t.Get(key) != nil {
			return errors.Wrapf(ErrDuplicateKey, "key %q", key)
		}
	case TypeList:
		if item.typ != t.elemType {
			return errors.Wrapf(ErrElementType, "list of %s cannot hold %s", t.elemType, item.typ)
		}
	default:
		return errors.Wrapf(ErrNotContainer, "cannot add to %s", t.typ)
	}
	if item.parent != nil {
		return ErrAttached
	}
	if item == t || item.isAncestorOf(t) {
		return ErrCycle
	}

	if t.typ == TypeObject {
		item.key = key
		item.hasKey = true
	} else {
		item.key = ""
		item.hasKey = false
	}
	item.parent = t
	t.children = append(t.children, item)
	return nil
}

// Remove detaches item from t and hands ownership of it back to the caller.
// The remaining children keep their relative order.
func (t *Tag) Remove(item *Tag) error {
	if t == nil || item == nil {
		return ErrNilTag
	}
	if item.parent != t {
		return ErrNotMember
	}
	i := item.index()
	if i < 0 {
		return ErrNotMember
	}
	t.removeAt(i)
	return nil
}

func (t *Tag) removeAt(i int) {
	item := t.children[i]
	copy(t.children[i:], t.children[i+1:])
	t.children[len(t.children)-1] = nil
	t.children = t.children[:len(t.children)-1]
	item.parent = nil
}

// Detach removes t from its parent, if it has one.
func (t *Tag) Detach() error {
	if t == nil {
		return ErrNilTag
	}
	if t.parent == nil {
		return nil
	}
	return t.parent.Remove(t)
}

// Clear deletes every child of a container. A cleared list also loses its
// declared element type.
func (t *Tag) Clear() error {
	if t == nil {
		return ErrNilTag
	}
	if !t.typ.IsContainer() {
		return errors.Wrapf(ErrNotContainer, "cannot clear %s", t.typ)
	}
	children := t.children
	t.children = nil
	for _, c := range children {
		c.parent = nil
		Delete(c)
	}
	if t.typ == TypeList {
		t.elemType = TypeEnd
	}
	return nil
}

// SetListElementType declares the type of the list's elements. The type of a
// list that already has a declared type and children cannot change.
func (t *Tag) SetListElementType(elem Type) error {
	if t == nil {
		return ErrNilTag
	}
	if t.typ != TypeList {
		return errors.Wrapf(ErrNotList, "tag is %s", t.typ)
	}
	if elem == TypeEnd || !elem.Valid() {
		return errors.Wrapf(ErrInvalidType, "cannot declare list of %s", elem)
	}
	if t.elemType != TypeEnd && len(t.children) > 0 {
		return ErrListTypeLocked
	}
	t.elemType = elem
	return nil
}

// Get returns the first member of an object with the given key, or nil.
func (t *Tag) Get(key string) *Tag {
	if t == nil || t.typ != TypeObject {
		return nil
	}
	for _, c := range t.children {
		if c.hasKey && c.key == key {
			return c
		}
	}
	return nil
}

// GetTyped is like Get but only matches members of type typ.
func (t *Tag) GetTyped(key string, typ Type) *Tag {
	if t == nil || t.typ != TypeObject {
		return nil
	}
	for _, c := range t.children {
		if c.hasKey && c.key == key && c.typ == typ {
			return c
		}
	}
	return nil
}

// Index returns the i-th child of a list or object, or nil when i is out of
// range.
func (t *Tag) Index(i int) *Tag {
	if t == nil || !t.typ.IsContainer() || i < 0 || i >= len(t.children) {
		return nil
	}
	return t.children[i]
}

// Lookup resolves a slash-separated path of object keys and list indices,
// such as "players/3/name", starting at t. Empty segments are skipped, so
// "" and "/" both resolve to t itself.
func (t *Tag) Lookup(path string) (*Tag, error) {
	if t == nil {
		return nil, ErrNilTag
	}
	cur := t
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		switch cur.typ {
		case TypeObject:
			next := cur.Get(seg)
			if next == nil {
				return nil, errors.Wrapf(ErrNotFound, "key %q", seg)
			}
			cur = next
		case TypeList:
			i, err := strconv.Atoi(seg)
			if err != nil {
				return nil, errors.Wrapf(ErrNotFound, "invalid list index %q", seg)
			}
			next := cur.Index(i)
			if next == nil {
				return nil, errors.Wrapf(ErrNotFound, "index %d out of range", i)
			}
			cur = next
		default:
			return nil, errors.Wrapf(ErrNotContainer, "cannot descend into %s at %q", cur.typ, seg)
		}
	}
	return cur, nil
}

// Delete destroys the subtree rooted at t, returning every payload buffer to
// the allocator it came from. An attached tag is removed from its parent
// first. Deleted tags report TypeEnd and must not be reused.
func Delete(t *Tag) {
	if t == nil {
		return
	}
	if t.parent != nil {
		if i := t.index(); i >= 0 {
			t.parent.removeAt(i)
		}
		t.parent = nil
	}

	stack := []*Tag{t}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, n.children...)
		n.release()
	}
}

func (t *Tag) release() {
	switch v := t.value.(type) {
	case stringValue:
		freeBuf(t.allocator(), v)
	case arrayValue:
		freeBuf(t.allocator(), v)
	}
	t.typ = TypeEnd
	t.key = ""
	t.hasKey = false
	t.elemType = TypeEnd
	t.value = nil
	t.parent = nil
	t.children = nil
}
