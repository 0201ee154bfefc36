package nbt

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

type reader struct {
	data     []byte
	off      int
	order    binary.ByteOrder
	alloc    Allocator
	maxDepth int
	depth    int
}

// Decode parses data into a new tree. On failure no tree is returned and
// every buffer allocated along the way has been released.
func (c *Codec) Decode(data []byte) (*Tag, error) {
	r := &reader{
		data:     data,
		order:    c.byteOrder(),
		alloc:    c.allocator(),
		maxDepth: c.maxDepth(),
	}

	typ, err := r.readType()
	if err != nil {
		return nil, err
	}
	if typ == TypeEnd {
		return nil, r.failAt(r.off-1, errors.Wrap(ErrInvalidType, "root tag cannot be end"))
	}
	key, err := r.readKey()
	if err != nil {
		return nil, err
	}

	root := newTag(typ, r.alloc)
	root.key = key
	root.hasKey = true
	if err := r.readPayload(root); err != nil {
		Delete(root)
		return nil, err
	}
	if c.Strict && r.off != len(r.data) {
		Delete(root)
		return nil, r.fail(errors.Wrapf(ErrTrailingData, "%d bytes", len(r.data)-r.off))
	}
	return root, nil
}

func (r *reader) fail(err error) error {
	return r.failAt(r.off, err)
}

func (r *reader) failAt(off int, err error) error {
	if _, ok := err.(*DecodeError); ok {
		return err
	}
	return &DecodeError{Offset: off, Err: err}
}

func (r *reader) need(n int64) error {
	if n < 0 || int64(len(r.data)-r.off) < n {
		return r.fail(errors.Wrapf(ErrTruncated, "need %d bytes, have %d", n, len(r.data)-r.off))
	}
	return nil
}

func (r *reader) readU8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.data[r.off]
	r.off++
	return b, nil
}

func (r *reader) readU16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := r.order.Uint16(r.data[r.off:])
	r.off += 2
	return v, nil
}

func (r *reader) readU32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := r.order.Uint32(r.data[r.off:])
	r.off += 4
	return v, nil
}

func (r *reader) readU64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := r.order.Uint64(r.data[r.off:])
	r.off += 8
	return v, nil
}

func (r *reader) readType() (Type, error) {
	b, err := r.readU8()
	if err != nil {
		return TypeEnd, err
	}
	t := Type(b)
	if !t.Valid() {
		return TypeEnd, r.failAt(r.off-1, errors.Wrapf(ErrInvalidType, "type byte 0x%02x", b))
	}
	return t, nil
}

// readCount reads an int32 element count and verifies that count elements of
// at least width bytes each fit in the remaining input.
func (r *reader) readCount(width int) (int, error) {
	u, err := r.readU32()
	if err != nil {
		return 0, err
	}
	n := int32(u)
	if n < 0 {
		return 0, r.failAt(r.off-4, errors.Wrapf(ErrNegativeLength, "count %d", n))
	}
	if err := r.need(int64(n) * int64(width)); err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *reader) readKey() (string, error) {
	n, err := r.readU16()
	if err != nil {
		return "", err
	}
	if err := r.need(int64(n)); err != nil {
		return "", err
	}
	s := string(r.data[r.off : r.off+int(n)])
	r.off += int(n)
	return s, nil
}

func (r *reader) readString() (stringValue, error) {
	n, err := r.readU16()
	if err != nil {
		return nil, err
	}
	if err := r.need(int64(n)); err != nil {
		return nil, err
	}
	buf, err := allocBuf(r.alloc, int(n))
	if err != nil {
		return nil, err
	}
	copy(buf, r.data[r.off:])
	r.off += int(n)
	return stringValue(buf), nil
}

func (r *reader) readArray(width int) (arrayValue, error) {
	n, err := r.readCount(width)
	if err != nil {
		return nil, err
	}
	buf, err := allocBuf(r.alloc, n*width)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		var v int64
		switch width {
		case 1:
			v = int64(int8(r.data[r.off]))
		case 4:
			v = int64(int32(r.order.Uint32(r.data[r.off:])))
		case 8:
			v = int64(r.order.Uint64(r.data[r.off:]))
		}
		putArrayElem(buf, width, i, v)
		r.off += width
	}
	return arrayValue(buf), nil
}

func (r *reader) readPayload(t *Tag) error {
	switch t.typ {
	case TypeInt8:
		v, err := r.readU8()
		if err != nil {
			return err
		}
		t.value = int8Value(v)
	case TypeInt16:
		v, err := r.readU16()
		if err != nil {
			return err
		}
		t.value = int16Value(v)
	case TypeInt32:
		v, err := r.readU32()
		if err != nil {
			return err
		}
		t.value = int32Value(v)
	case TypeInt64:
		v, err := r.readU64()
		if err != nil {
			return err
		}
		t.value = int64Value(v)
	case TypeFloat32:
		v, err := r.readU32()
		if err != nil {
			return err
		}
		t.value = float32Value(v)
	case TypeFloat64:
		v, err := r.readU64()
		if err != nil {
			return err
		}
		t.value = float64Value(v)
	case TypeString:
		v, err := r.readString()
		if err != nil {
			return err
		}
		t.value = v
	case TypeByteArray8, TypeByteArray32, TypeByteArray64:
		v, err := r.readArray(t.typ.elemWidth())
		if err != nil {
			return err
		}
		t.value = v
	case TypeList:
		return r.readList(t)
	case TypeObject:
		return r.readObject(t)
	default:
		return r.fail(errors.Wrapf(ErrInvalidType, "cannot decode payload of %s", t.typ))
	}
	return nil
}

func (r *reader) enter() error {
	r.depth++
	if r.depth > r.maxDepth {
		return r.fail(errors.Wrapf(ErrDepthExceeded, "limit is %d", r.maxDepth))
	}
	return nil
}

func (r *reader) leave() {
	r.depth--
}

func (r *reader) readList(t *Tag) error {
	if err := r.enter(); err != nil {
		return err
	}
	defer r.leave()

	elemOff := r.off
	elem, err := r.readType()
	if err != nil {
		return err
	}
	n, err := r.readCount(elem.minPayloadLen())
	if err != nil {
		return err
	}
	if n > 0 && elem == TypeEnd {
		return r.failAt(elemOff, errors.Wrapf(ErrInvalidType, "list of %d end tags", n))
	}

	t.elemType = elem
	if n == 0 {
		return nil
	}
	t.children = make([]*Tag, 0, n)
	for i := 0; i < n; i++ {
		child := newTag(elem, r.alloc)
		child.parent = t
		t.children = append(t.children, child)
		if err := r.readPayload(child); err != nil {
			return err
		}
	}
	return nil
}

func (r *reader) readObject(t *Tag) error {
	if err := r.enter(); err != nil {
		return err
	}
	defer r.leave()

	for {
		typ, err := r.readType()
		if err != nil {
			return err
		}
		if typ == TypeEnd {
			return nil
		}
		key, err := r.readKey()
		if err != nil {
			return err
		}
		child := newTag(typ, r.alloc)
		child.key = key
		child.hasKey = true
		child.parent = t
		t.children = append(t.children, child)
		if err := r.readPayload(child); err != nil {
			return err
		}
	}
}
