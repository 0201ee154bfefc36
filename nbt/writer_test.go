package nbt

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func scenarioTree(t *testing.T) *Tag {
	root := NewObject()
	require.NoError(t, root.Add(NewInt32(42), "x"))
	require.NoError(t, root.Add(mustList(t, TypeInt8), "y"))
	return root
}

func TestEncode_Scenario(t *testing.T) {
	root := scenarioTree(t)

	be, err := Encode(root, 0, true)
	require.NoError(t, err)
	require.Equal(t, scenarioBE, be)

	le, err := Encode(root, 0, false)
	require.NoError(t, err)
	require.Equal(t, scenarioLE, le)
}

func TestEncode_RoundTrip(t *testing.T) {
	for _, bigEndian := range []bool{true, false} {
		root := sampleTree(t)
		data, err := Encode(root, 0, bigEndian)
		require.NoError(t, err)

		decoded, err := Decode(data, bigEndian)
		require.NoError(t, err)
		require.True(t, Equal(root, decoded), "big endian: %v", bigEndian)

		again, err := Encode(decoded, 0, bigEndian)
		require.NoError(t, err)
		require.Equal(t, data, again)
	}
}

func TestEncode_ByteOrderDiffers(t *testing.T) {
	root := sampleTree(t)
	be, err := Encode(root, 0, true)
	require.NoError(t, err)
	le, err := Encode(root, 0, false)
	require.NoError(t, err)
	require.Equal(t, len(be), len(le))
	require.NotEqual(t, be, le)

	_, err = Decode(be, false)
	require.Error(t, err)
}

func TestEncode_FloatBitsPreserved(t *testing.T) {
	nan32 := math.Float32frombits(0x7fc00001)
	nan64 := math.Float64frombits(0x7ff8000000000abc)

	root := NewObject()
	require.NoError(t, root.Add(NewFloat32(nan32), "f32"))
	require.NoError(t, root.Add(NewFloat64(nan64), "f64"))
	require.NoError(t, root.Add(NewFloat64(math.Copysign(0, -1)), "negzero"))

	data, err := Encode(root, 0, true)
	require.NoError(t, err)
	decoded, err := Decode(data, true)
	require.NoError(t, err)

	f32, ok := decoded.Get("f32").Float32()
	require.True(t, ok)
	require.EqualValues(t, 0x7fc00001, math.Float32bits(f32))
	f64, ok := decoded.Get("f64").Float64()
	require.True(t, ok)
	require.EqualValues(t, uint64(0x7ff8000000000abc), math.Float64bits(f64))
	z, ok := decoded.Get("negzero").Float64()
	require.True(t, ok)
	require.True(t, math.Signbit(z))
	require.True(t, Equal(root, decoded))
}

func TestEncode_BufferGrowth(t *testing.T) {
	root := sampleTree(t)
	want, err := Encode(root, 0, true)
	require.NoError(t, err)

	alloc := NewCountingAllocator(nil, 0)
	c := &Codec{BigEndian: true, InitialCapacity: 1, Allocator: alloc}
	got, err := c.Encode(root)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Greater(t, alloc.Allocs(), 1)
	require.Equal(t, 1, alloc.Live())
	require.GreaterOrEqual(t, alloc.LiveBytes(), len(got))

	c.FreeBuffer(got)
	require.Equal(t, 0, alloc.Live())
}

func TestEncode_AllocationFailure(t *testing.T) {
	alloc := NewCountingAllocator(nil, 64)
	c := &Codec{BigEndian: true, InitialCapacity: 16, Allocator: alloc}
	_, err := c.Encode(sampleTree(t))
	require.True(t, errors.Is(err, ErrAllocation))
	require.Equal(t, 0, alloc.Live())
}

func TestEncode_Invalid(t *testing.T) {
	_, err := Encode(nil, 0, true)
	require.Equal(t, ErrNilTag, err)

	deleted := NewInt8(1)
	Delete(deleted)
	_, err = Encode(deleted, 0, true)
	require.True(t, errors.Is(err, ErrInvalidType))
}

func TestEncode_MaxDepth(t *testing.T) {
	root := mustList(t, TypeList)
	cur := root
	for i := 0; i < 4; i++ {
		next := mustList(t, TypeList)
		require.NoError(t, cur.Add(next, ""))
		cur = next
	}

	c := &Codec{MaxDepth: 5}
	data, err := c.Encode(root)
	require.NoError(t, err)
	_, err = c.Decode(data)
	require.NoError(t, err)

	c.MaxDepth = 4
	_, err = c.Encode(root)
	require.True(t, errors.Is(err, ErrDepthExceeded))
}

func TestEncode_DoesNotMutate(t *testing.T) {
	root := sampleTree(t)
	clone, err := root.Clone()
	require.NoError(t, err)
	_, err = Encode(root, 0, false)
	require.NoError(t, err)
	require.True(t, Equal(root, clone))
}
