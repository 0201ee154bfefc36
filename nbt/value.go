package nbt

import (
	"math"

	"github.com/pkg/errors"
)

func (t *Tag) expect(typ Type) error {
	if t == nil {
		return ErrNilTag
	}
	if t.typ != typ {
		return errors.Wrapf(ErrTypeMismatch, "tag is %s, not %s", t.typ, typ)
	}
	return nil
}

func (t *Tag) SetInt8(v int8) error {
	if err := t.expect(TypeInt8); err != nil {
		return err
	}
	t.value = int8Value(v)
	return nil
}

func (t *Tag) SetInt16(v int16) error {
	if err := t.expect(TypeInt16); err != nil {
		return err
	}
	t.value = int16Value(v)
	return nil
}

func (t *Tag) SetInt32(v int32) error {
	if err := t.expect(TypeInt32); err != nil {
		return err
	}
	t.value = int32Value(v)
	return nil
}

func (t *Tag) SetInt64(v int64) error {
	if err := t.expect(TypeInt64); err != nil {
		return err
	}
	t.value = int64Value(v)
	return nil
}

// SetFloat32 stores the exact bit pattern of v, NaN payloads included.
func (t *Tag) SetFloat32(v float32) error {
	if err := t.expect(TypeFloat32); err != nil {
		return err
	}
	t.value = float32Bits(v)
	return nil
}

func (t *Tag) SetFloat64(v float64) error {
	if err := t.expect(TypeFloat64); err != nil {
		return err
	}
	t.value = float64Bits(v)
	return nil
}

// SetString replaces the string payload with s. Strings longer than
// MaxStringLen are rejected and the tag is left unchanged.
func (t *Tag) SetString(s string) error {
	if err := t.expect(TypeString); err != nil {
		return err
	}
	if len(s) > MaxStringLen {
		return errors.Wrapf(ErrStringTooLong, "string is %d bytes", len(s))
	}
	buf, err := allocBuf(t.allocator(), len(s))
	if err != nil {
		return err
	}
	copy(buf, s)
	t.replaceValue(stringValue(buf))
	return nil
}

// SetStringBytes replaces the string payload with the first length bytes of
// b. A negative length stores all of b, failing with ErrStringTooLong if b is
// longer than MaxStringLen. An explicit length is clamped to len(b) and to
// MaxStringLen.
func (t *Tag) SetStringBytes(b []byte, length int) error {
	if err := t.expect(TypeString); err != nil {
		return err
	}
	if length < 0 {
		if len(b) > MaxStringLen {
			return errors.Wrapf(ErrStringTooLong, "string is %d bytes", len(b))
		}
		length = len(b)
	}
	if length > len(b) {
		length = len(b)
	}
	if length > MaxStringLen {
		length = MaxStringLen
	}
	buf, err := allocBuf(t.allocator(), length)
	if err != nil {
		return err
	}
	copy(buf, b[:length])
	t.replaceValue(stringValue(buf))
	return nil
}

func (t *Tag) SetByteArray8(v []int8) error {
	if err := t.expect(TypeByteArray8); err != nil {
		return err
	}
	buf, err := t.allocArray(len(v))
	if err != nil {
		return err
	}
	for i, e := range v {
		putArrayElem(buf, 1, i, int64(e))
	}
	t.replaceValue(arrayValue(buf))
	return nil
}

func (t *Tag) SetByteArray32(v []int32) error {
	if err := t.expect(TypeByteArray32); err != nil {
		return err
	}
	buf, err := t.allocArray(len(v))
	if err != nil {
		return err
	}
	for i, e := range v {
		putArrayElem(buf, 4, i, int64(e))
	}
	t.replaceValue(arrayValue(buf))
	return nil
}

func (t *Tag) SetByteArray64(v []int64) error {
	if err := t.expect(TypeByteArray64); err != nil {
		return err
	}
	buf, err := t.allocArray(len(v))
	if err != nil {
		return err
	}
	for i, e := range v {
		putArrayElem(buf, 8, i, e)
	}
	t.replaceValue(arrayValue(buf))
	return nil
}

func (t *Tag) allocArray(n int) ([]byte, error) {
	if n > MaxArrayLen {
		return nil, errors.Wrapf(ErrArrayTooLong, "%d elements", n)
	}
	return allocBuf(t.allocator(), n*t.typ.elemWidth())
}

// replaceValue installs a new payload and returns the previous buffer, if
// any, to the allocator.
func (t *Tag) replaceValue(v payload) {
	switch old := t.value.(type) {
	case stringValue:
		freeBuf(t.allocator(), old)
	case arrayValue:
		freeBuf(t.allocator(), old)
	}
	t.value = v
}

// Typed getters report false when the tag is nil or holds a different type.

func (t *Tag) Int8() (int8, bool) {
	if t == nil {
		return 0, false
	}
	v, ok := t.value.(int8Value)
	return int8(v), ok
}

func (t *Tag) Int16() (int16, bool) {
	if t == nil {
		return 0, false
	}
	v, ok := t.value.(int16Value)
	return int16(v), ok
}

func (t *Tag) Int32() (int32, bool) {
	if t == nil {
		return 0, false
	}
	v, ok := t.value.(int32Value)
	return int32(v), ok
}

func (t *Tag) Int64() (int64, bool) {
	if t == nil {
		return 0, false
	}
	v, ok := t.value.(int64Value)
	return int64(v), ok
}

func (t *Tag) Float32() (float32, bool) {
	if t == nil {
		return 0, false
	}
	v, ok := t.value.(float32Value)
	return math.Float32frombits(uint32(v)), ok
}

func (t *Tag) Float64() (float64, bool) {
	if t == nil {
		return 0, false
	}
	v, ok := t.value.(float64Value)
	return math.Float64frombits(uint64(v)), ok
}

// StringValue returns the string payload.
func (t *Tag) StringValue() (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.value.(stringValue)
	if !ok {
		return "", false
	}
	return string(v), true
}

// StringLen returns the length in bytes of the string payload, or 0 when the
// tag is not a string.
func (t *Tag) StringLen() int {
	if t == nil {
		return 0
	}
	v, _ := t.value.(stringValue)
	return len(v)
}

// Bytes returns a copy of the raw string payload.
func (t *Tag) Bytes() ([]byte, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.value.(stringValue)
	if !ok {
		return nil, false
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true
}

func (t *Tag) ByteArray8() ([]int8, bool) {
	v, ok := t.arrayOf(TypeByteArray8)
	if !ok {
		return nil, false
	}
	out := make([]int8, len(v))
	for i := range out {
		out[i] = int8(arrayElem(v, 1, i))
	}
	return out, true
}

func (t *Tag) ByteArray32() ([]int32, bool) {
	v, ok := t.arrayOf(TypeByteArray32)
	if !ok {
		return nil, false
	}
	out := make([]int32, len(v)/4)
	for i := range out {
		out[i] = int32(arrayElem(v, 4, i))
	}
	return out, true
}

func (t *Tag) ByteArray64() ([]int64, bool) {
	v, ok := t.arrayOf(TypeByteArray64)
	if !ok {
		return nil, false
	}
	out := make([]int64, len(v)/8)
	for i := range out {
		out[i] = arrayElem(v, 8, i)
	}
	return out, true
}

func (t *Tag) arrayOf(typ Type) (arrayValue, bool) {
	if t == nil || t.typ != typ {
		return nil, false
	}
	v, ok := t.value.(arrayValue)
	return v, ok
}
