package testnbt

import (
	"testing"

	"nbtkit/nbt"

	"github.com/stretchr/testify/require"
)

// NewLevelTree returns a small tree shaped like a saved-game header: an
// object with scalar members, a string, an array, a list of objects and a
// nested object.
func NewLevelTree(t *testing.T) *nbt.Tag {
	root := nbt.NewObject()
	add := func(parent *nbt.Tag, tag *nbt.Tag, key string) {
		require.NoError(t, parent.Add(tag, key))
	}

	name, err := nbt.NewString("Overworld")
	require.NoError(t, err)
	add(root, name, "LevelName")
	add(root, nbt.NewInt64(8675309), "RandomSeed")
	add(root, nbt.NewInt32(19133), "version")
	add(root, nbt.NewInt8(1), "hardcore")
	add(root, nbt.NewFloat32(0.5), "rainTime")
	add(root, nbt.NewFloat64(-12.75), "SpawnX")

	heights, err := nbt.NewByteArray32([]int32{64, 65, 63, -1})
	require.NoError(t, err)
	add(root, heights, "HeightMap")

	players, err := nbt.NewList(nbt.TypeObject)
	require.NoError(t, err)
	for i, n := range []string{"alex", "steve"} {
		p := nbt.NewObject()
		pn, err := nbt.NewString(n)
		require.NoError(t, err)
		add(p, pn, "name")
		add(p, nbt.NewInt16(int16(20-i)), "health")
		require.NoError(t, players.Add(p, ""))
	}
	add(root, players, "Players")

	rules := nbt.NewObject()
	add(rules, nbt.NewInt8(0), "doDaylightCycle")
	flags, err := nbt.NewByteArray8([]int8{1, 0, 1})
	require.NoError(t, err)
	add(rules, flags, "flags")
	add(root, rules, "GameRules")
	return root
}

// MustEncode encodes tag with the given byte order.
func MustEncode(t *testing.T, tag *nbt.Tag, bigEndian bool) []byte {
	data, err := nbt.Encode(tag, 0, bigEndian)
	require.NoError(t, err)
	return data
}
