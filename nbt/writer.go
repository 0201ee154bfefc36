package nbt

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

type writer struct {
	buf      []byte
	off      int
	order    binary.ByteOrder
	alloc    Allocator
	maxDepth int
	depth    int
}

// Encode serializes the tree rooted at tag: the root's type byte, its key
// (empty when it has none), then its payload. The tree is not modified.
func (c *Codec) Encode(tag *Tag) ([]byte, error) {
	if tag == nil {
		return nil, ErrNilTag
	}
	if tag.typ == TypeEnd || !tag.typ.Valid() {
		return nil, errors.Wrapf(ErrInvalidType, "cannot encode root of %s", tag.typ)
	}

	w := &writer{
		order:    c.byteOrder(),
		alloc:    c.allocator(),
		maxDepth: c.maxDepth(),
	}
	buf, err := allocBuf(w.alloc, c.initialCapacity())
	if err != nil {
		return nil, err
	}
	w.buf = buf

	if err := w.writeRoot(tag); err != nil {
		freeBuf(w.alloc, w.buf)
		return nil, err
	}
	return w.buf[:w.off], nil
}

func (w *writer) writeRoot(tag *Tag) error {
	if err := w.writeU8(uint8(tag.typ)); err != nil {
		return err
	}
	if err := w.writeString(tag.key); err != nil {
		return err
	}
	return w.writePayload(tag)
}

// expand makes room for n more bytes, doubling the buffer as many times as
// needed.
func (w *writer) expand(n int) error {
	if w.off+n <= len(w.buf) {
		return nil
	}
	size := len(w.buf)
	if size == 0 {
		size = DefaultInitialCapacity
	}
	for size < w.off+n {
		size *= 2
	}
	buf, err := allocBuf(w.alloc, size)
	if err != nil {
		return err
	}
	copy(buf, w.buf[:w.off])
	freeBuf(w.alloc, w.buf)
	w.buf = buf
	return nil
}

func (w *writer) writeU8(v uint8) error {
	if err := w.expand(1); err != nil {
		return err
	}
	w.buf[w.off] = v
	w.off++
	return nil
}

func (w *writer) writeU16(v uint16) error {
	if err := w.expand(2); err != nil {
		return err
	}
	w.order.PutUint16(w.buf[w.off:], v)
	w.off += 2
	return nil
}

func (w *writer) writeU32(v uint32) error {
	if err := w.expand(4); err != nil {
		return err
	}
	w.order.PutUint32(w.buf[w.off:], v)
	w.off += 4
	return nil
}

func (w *writer) writeU64(v uint64) error {
	if err := w.expand(8); err != nil {
		return err
	}
	w.order.PutUint64(w.buf[w.off:], v)
	w.off += 8
	return nil
}

func (w *writer) writeString(s string) error {
	if len(s) > MaxStringLen {
		return errors.Wrapf(ErrStringTooLong, "string is %d bytes", len(s))
	}
	if err := w.writeU16(uint16(len(s))); err != nil {
		return err
	}
	if err := w.expand(len(s)); err != nil {
		return err
	}
	w.off += copy(w.buf[w.off:], s)
	return nil
}

func (w *writer) writeBytes(b []byte) error {
	if len(b) > MaxStringLen {
		return errors.Wrapf(ErrStringTooLong, "string is %d bytes", len(b))
	}
	if err := w.writeU16(uint16(len(b))); err != nil {
		return err
	}
	if err := w.expand(len(b)); err != nil {
		return err
	}
	w.off += copy(w.buf[w.off:], b)
	return nil
}

func (w *writer) writeArray(v arrayValue, width int) error {
	n := len(v) / width
	if err := w.writeU32(uint32(int32(n))); err != nil {
		return err
	}
	if err := w.expand(len(v)); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		e := arrayElem(v, width, i)
		switch width {
		case 1:
			w.buf[w.off] = byte(e)
		case 4:
			w.order.PutUint32(w.buf[w.off:], uint32(e))
		case 8:
			w.order.PutUint64(w.buf[w.off:], uint64(e))
		}
		w.off += width
	}
	return nil
}

func (w *writer) writePayload(t *Tag) error {
	switch v := t.value.(type) {
	case int8Value:
		return w.writeU8(uint8(v))
	case int16Value:
		return w.writeU16(uint16(v))
	case int32Value:
		return w.writeU32(uint32(v))
	case int64Value:
		return w.writeU64(uint64(v))
	case float32Value:
		return w.writeU32(uint32(v))
	case float64Value:
		return w.writeU64(uint64(v))
	case stringValue:
		return w.writeBytes(v)
	case arrayValue:
		return w.writeArray(v, t.typ.elemWidth())
	}

	switch t.typ {
	case TypeList:
		return w.writeList(t)
	case TypeObject:
		return w.writeObject(t)
	default:
		return errors.Wrapf(ErrInvalidType, "cannot encode payload of %s", t.typ)
	}
}

func (w *writer) enter() error {
	w.depth++
	if w.depth > w.maxDepth {
		return errors.Wrapf(ErrDepthExceeded, "limit is %d", w.maxDepth)
	}
	return nil
}

func (w *writer) leave() {
	w.depth--
}

func (w *writer) writeList(t *Tag) error {
	if err := w.enter(); err != nil {
		return err
	}
	defer w.leave()

	if err := w.writeU8(uint8(t.elemType)); err != nil {
		return err
	}
	if err := w.writeU32(uint32(int32(len(t.children)))); err != nil {
		return err
	}
	for _, c := range t.children {
		if c.typ != t.elemType {
			return errors.Wrapf(ErrElementType, "list of %s holds %s", t.elemType, c.typ)
		}
		if err := w.writePayload(c); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) writeObject(t *Tag) error {
	if err := w.enter(); err != nil {
		return err
	}
	defer w.leave()

	for _, c := range t.children {
		if err := w.writeU8(uint8(c.typ)); err != nil {
			return err
		}
		if err := w.writeString(c.key); err != nil {
			return err
		}
		if err := w.writePayload(c); err != nil {
			return err
		}
	}
	return w.writeU8(uint8(TypeEnd))
}
