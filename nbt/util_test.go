package nbt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// scenarioBE is an object holding an int32 "x" = 42 and an empty list of
// int8 "y", encoded big-endian with an empty root key.
var scenarioBE = []byte{
	0x0a, 0x00, 0x00,
	0x03, 0x00, 0x01, 'x', 0x00, 0x00, 0x00, 0x2a,
	0x09, 0x00, 0x01, 'y', 0x01, 0x00, 0x00, 0x00, 0x00,
	0x00,
}

var scenarioLE = []byte{
	0x0a, 0x00, 0x00,
	0x03, 0x01, 0x00, 'x', 0x2a, 0x00, 0x00, 0x00,
	0x09, 0x01, 0x00, 'y', 0x01, 0x00, 0x00, 0x00, 0x00,
	0x00,
}

func mustList(t *testing.T, elem Type) *Tag {
	l, err := NewList(elem)
	require.NoError(t, err)
	return l
}

func mustString(t *testing.T, s string) *Tag {
	tag, err := NewString(s)
	require.NoError(t, err)
	return tag
}

func sampleTree(t *testing.T) *Tag {
	root := NewObject()
	require.NoError(t, root.Add(NewInt8(-5), "i8"))
	require.NoError(t, root.Add(NewInt16(-300), "i16"))
	require.NoError(t, root.Add(NewInt32(42), "i32"))
	require.NoError(t, root.Add(NewInt64(-1<<40), "i64"))
	require.NoError(t, root.Add(NewFloat32(3.5), "f32"))
	require.NoError(t, root.Add(NewFloat64(math.Pi), "f64"))
	require.NoError(t, root.Add(mustString(t, "hello, world"), "str"))
	require.NoError(t, root.Add(mustString(t, ""), ""))

	a8, err := NewByteArray8([]int8{-1, 0, 1, 127, -128})
	require.NoError(t, err)
	require.NoError(t, root.Add(a8, "a8"))
	a32, err := NewByteArray32([]int32{math.MinInt32, 0, math.MaxInt32})
	require.NoError(t, err)
	require.NoError(t, root.Add(a32, "a32"))
	a64, err := NewByteArray64(nil)
	require.NoError(t, err)
	require.NoError(t, root.Add(a64, "a64"))

	ints := mustList(t, TypeInt32)
	for _, v := range []int32{1, 2, 3} {
		require.NoError(t, ints.Add(NewInt32(v), ""))
	}
	require.NoError(t, root.Add(ints, "ints"))

	objs := mustList(t, TypeObject)
	for _, name := range []string{"alice", "bob"} {
		o := NewObject()
		require.NoError(t, o.Add(mustString(t, name), "name"))
		require.NoError(t, objs.Add(o, ""))
	}
	require.NoError(t, root.Add(objs, "objs"))

	nested := mustList(t, TypeList)
	inner := mustList(t, TypeString)
	require.NoError(t, inner.Add(mustString(t, "deep"), ""))
	require.NoError(t, nested.Add(inner, ""))
	require.NoError(t, nested.Add(mustList(t, TypeInt64), ""))
	require.NoError(t, root.Add(nested, "nested"))

	child := NewObject()
	require.NoError(t, child.Add(NewFloat64(-0.0), "zero"))
	require.NoError(t, root.Add(child, "child"))
	require.NoError(t, root.Add(mustList(t, TypeInt8), "empty"))
	return root
}
