package nbt

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestDecode_Scenario(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		bigEndian bool
	}{
		{"big endian", scenarioBE, true},
		{"little endian", scenarioLE, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Decode(tt.data, tt.bigEndian)
			require.NoError(t, err)
			require.Equal(t, TypeObject, root.Type())
			require.Equal(t, 2, root.Len())

			key, ok := root.Key()
			require.True(t, ok)
			require.Equal(t, "", key)

			x := root.Get("x")
			require.Equal(t, TypeInt32, x.Type())
			v, ok := x.Int32()
			require.True(t, ok)
			require.EqualValues(t, 42, v)

			y := root.GetTyped("y", TypeList)
			require.NotNil(t, y)
			require.Equal(t, TypeInt8, y.ElementType())
			require.Equal(t, 0, y.Len())
			require.Nil(t, y.First())

			require.Equal(t, x, root.First())
			require.Equal(t, y, x.Next())
			require.Equal(t, x, y.Prev())
			require.Nil(t, x.Prev())
			require.Nil(t, y.Next())
		})
	}
}

func TestDecode_TruncatedPrefixes(t *testing.T) {
	data, err := Encode(sampleTree(t), 0, true)
	require.NoError(t, err)

	alloc := NewCountingAllocator(nil, 0)
	c := &Codec{BigEndian: true, Allocator: alloc}
	for i := 0; i < len(data); i++ {
		tag, err := c.Decode(data[:i])
		require.Nil(t, tag, "prefix of %d bytes", i)
		require.Error(t, err, "prefix of %d bytes", i)
		require.True(t, IsDecodeError(err), "prefix of %d bytes: %v", i, err)
		require.Equal(t, 0, alloc.Live(), "prefix of %d bytes leaked buffers", i)
	}

	tag, err := c.Decode(data)
	require.NoError(t, err)
	require.NotZero(t, alloc.Live())
	Delete(tag)
	require.Equal(t, 0, alloc.Live())
	require.Equal(t, 0, alloc.LiveBytes())
}

func TestDecode_KeysBypassAllocator(t *testing.T) {
	alloc := NewCountingAllocator(nil, 0)
	c := &Codec{BigEndian: true, Allocator: alloc}
	tag, err := c.Decode(scenarioBE)
	require.NoError(t, err)
	defer Delete(tag)

	require.NotNil(t, tag.Get("x"))
	require.NotNil(t, tag.Get("y"))
	require.Equal(t, 0, alloc.Allocs())
	require.Equal(t, 0, alloc.Live())
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		err    error
		offset int
	}{
		{
			"empty input",
			[]byte{},
			ErrTruncated,
			0,
		},
		{
			"root end tag",
			[]byte{0x00, 0x00, 0x00},
			ErrInvalidType,
			0,
		},
		{
			"out of range root type",
			[]byte{0x0d, 0x00, 0x00},
			ErrInvalidType,
			0,
		},
		{
			"out of range member type",
			[]byte{0x0a, 0x00, 0x00, 0x0d, 0x00, 0x00},
			ErrInvalidType,
			3,
		},
		{
			"negative array count",
			[]byte{0x07, 0x00, 0x00, 0xff, 0xff, 0xff, 0xff},
			ErrNegativeLength,
			3,
		},
		{
			"negative list count",
			[]byte{0x09, 0x00, 0x00, 0x01, 0x80, 0x00, 0x00, 0x00},
			ErrNegativeLength,
			4,
		},
		{
			"list count larger than input",
			[]byte{0x0a, 0x00, 0x00, 0x09, 0x00, 0x01, 'l', 0x03, 0x7f, 0xff, 0xff, 0xff},
			ErrTruncated,
			12,
		},
		{
			"array count larger than input",
			[]byte{0x0c, 0x00, 0x00, 0x00, 0x00, 0x00, 0x02, 0x01},
			ErrTruncated,
			7,
		},
		{
			"string longer than input",
			[]byte{0x08, 0x00, 0x00, 0x00, 0x05, 'a', 'b'},
			ErrTruncated,
			5,
		},
		{
			"key longer than input",
			[]byte{0x0a, 0x00, 0x00, 0x01, 0x00, 0x09, 'k'},
			ErrTruncated,
			6,
		},
		{
			"populated list of end",
			[]byte{0x09, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01},
			ErrInvalidType,
			3,
		},
		{
			"invalid list element type",
			[]byte{0x09, 0x00, 0x00, 0x20, 0x00, 0x00, 0x00, 0x00},
			ErrInvalidType,
			3,
		},
		{
			"missing object terminator",
			[]byte{0x0a, 0x00, 0x00, 0x01, 0x00, 0x00, 0x07},
			ErrTruncated,
			7,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, err := Decode(tt.data, true)
			require.Nil(t, tag)
			require.True(t, errors.Is(err, tt.err), "got %v", err)
			var de *DecodeError
			require.True(t, errors.As(err, &de))
			require.Equal(t, tt.offset, de.Offset)
		})
	}
}

func nestedLists(depth int) []byte {
	data := []byte{0x09, 0x00, 0x00}
	for i := 1; i < depth; i++ {
		data = append(data, 0x09, 0x00, 0x00, 0x00, 0x01)
	}
	return append(data, 0x01, 0x00, 0x00, 0x00, 0x00)
}

func TestDecode_MaxDepth(t *testing.T) {
	c := &Codec{BigEndian: true, MaxDepth: 4}

	tag, err := c.Decode(nestedLists(4))
	require.NoError(t, err)
	depth := 0
	for cur := tag; cur != nil; cur = cur.First() {
		depth++
	}
	require.Equal(t, 4, depth)

	_, err = c.Decode(nestedLists(5))
	require.True(t, errors.Is(err, ErrDepthExceeded))
	require.True(t, IsDecodeError(err))

	_, err = Decode(nestedLists(DefaultMaxDepth), true)
	require.NoError(t, err)
	_, err = Decode(nestedLists(DefaultMaxDepth+1), true)
	require.True(t, errors.Is(err, ErrDepthExceeded))
}

func TestDecode_TrailingData(t *testing.T) {
	data := append(append([]byte{}, scenarioBE...), 0xde, 0xad)

	tag, err := Decode(data, true)
	require.NoError(t, err)
	require.Equal(t, 2, tag.Len())

	c := &Codec{BigEndian: true, Strict: true}
	_, err = c.Decode(data)
	require.True(t, errors.Is(err, ErrTrailingData))
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	require.Equal(t, len(scenarioBE), de.Offset)
}

func TestDecode_AllocationFailure(t *testing.T) {
	alloc := NewCountingAllocator(nil, 4)
	c := &Codec{BigEndian: true, Allocator: alloc}

	_, err := c.Decode([]byte{0x08, 0x00, 0x00, 0x00, 0x05, 'h', 'e', 'l', 'l', 'o'})
	require.True(t, errors.Is(err, ErrAllocation))
	require.False(t, IsDecodeError(err))
	require.Equal(t, 0, alloc.Live())

	tag, err := c.Decode([]byte{0x08, 0x00, 0x00, 0x00, 0x04, 'h', 'e', 'l', 'l'})
	require.NoError(t, err)
	s, ok := tag.StringValue()
	require.True(t, ok)
	require.Equal(t, "hell", s)
	require.Equal(t, 1, alloc.Live())
	Delete(tag)
	require.Equal(t, 0, alloc.Live())
}

func TestDecode_RootKey(t *testing.T) {
	data := []byte{0x01, 0x00, 0x04, 'r', 'o', 'o', 't', 0x7f}
	tag, err := Decode(data, true)
	require.NoError(t, err)
	key, ok := tag.Key()
	require.True(t, ok)
	require.Equal(t, "root", key)
	v, ok := tag.Int8()
	require.True(t, ok)
	require.EqualValues(t, 127, v)

	out, err := Encode(tag, 0, true)
	require.NoError(t, err)
	require.Equal(t, data, out)
}
