package nbt

import (
	"bytes"
	"strconv"

	"github.com/pkg/errors"
)

// Clone returns a deep, detached copy of the tree rooted at t. The copy's
// buffers come from the same allocator as t's.
func (t *Tag) Clone() (*Tag, error) {
	if t == nil {
		return nil, ErrNilTag
	}
	out, err := t.cloneNode()
	if err != nil {
		return nil, err
	}
	out.key = t.key
	out.hasKey = t.hasKey
	return out, nil
}

func (t *Tag) cloneNode() (*Tag, error) {
	out := newTag(t.typ, t.alloc)
	out.elemType = t.elemType
	switch v := t.value.(type) {
	case stringValue:
		buf, err := allocBuf(out.allocator(), len(v))
		if err != nil {
			return nil, err
		}
		copy(buf, v)
		out.value = stringValue(buf)
	case arrayValue:
		buf, err := allocBuf(out.allocator(), len(v))
		if err != nil {
			return nil, err
		}
		copy(buf, v)
		out.value = arrayValue(buf)
	default:
		out.value = v
	}

	if len(t.children) > 0 {
		out.children = make([]*Tag, 0, len(t.children))
	}
	for _, c := range t.children {
		cc, err := c.cloneNode()
		if err != nil {
			Delete(out)
			return nil, err
		}
		cc.key = c.key
		cc.hasKey = c.hasKey
		cc.parent = out
		out.children = append(out.children, cc)
	}
	return out, nil
}

// Equal reports whether two trees are structurally identical: same types,
// keys, list element types, payload bit patterns and children in the same
// order. The roots' own keys are compared by value only, since the wire
// format always carries a root key and cannot tell an empty key from none.
func Equal(a, b *Tag) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.key != b.key {
		return false
	}
	return equalNode(a, b)
}

func equalNode(a, b *Tag) bool {
	if a.typ != b.typ || (a.typ == TypeList && a.elemType != b.elemType) {
		return false
	}
	switch av := a.value.(type) {
	case stringValue:
		bv, ok := b.value.(stringValue)
		if !ok || !bytes.Equal(av, bv) {
			return false
		}
	case arrayValue:
		bv, ok := b.value.(arrayValue)
		if !ok || !bytes.Equal(av, bv) {
			return false
		}
	default:
		if a.value != b.value {
			return false
		}
	}
	if len(a.children) != len(b.children) {
		return false
	}
	for i := range a.children {
		ac, bc := a.children[i], b.children[i]
		if ac.hasKey != bc.hasKey || ac.key != bc.key {
			return false
		}
		if !equalNode(ac, bc) {
			return false
		}
	}
	return true
}

// WalkFunc is called for every tag visited by Walk. path holds the object
// keys and list indices leading from the root to t; it is empty for the root
// and is reused between calls.
type WalkFunc func(path []string, t *Tag) error

// SkipChildren may be returned by a WalkFunc to skip a container's children.
var SkipChildren = errors.New("skip children")

// Walk visits t and its descendants depth-first in pre-order.
func Walk(t *Tag, fn WalkFunc) error {
	if t == nil {
		return ErrNilTag
	}
	path := make([]string, 0, 8)
	return walk(path, t, fn)
}

func walk(path []string, t *Tag, fn WalkFunc) error {
	if err := fn(path, t); err != nil {
		if err == SkipChildren {
			return nil
		}
		return err
	}
	for i, c := range t.children {
		seg := c.key
		if t.typ == TypeList {
			seg = strconv.Itoa(i)
		}
		if err := walk(append(path, seg), c, fn); err != nil {
			return err
		}
	}
	return nil
}
