package store

import (
	"testing"

	"nbtkit/nbt"
	"nbtkit/testutil/testnbt"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
)

func TestTrees(t *testing.T) {
	db, done := setupLevelDB(t)
	defer done()

	tree := testnbt.NewLevelTree(t)
	codec := &nbt.Codec{BigEndian: false}

	info, err := PutTree(db, codec, "level", tree)
	require.NoError(t, err)
	require.Equal(t, "level", info.Name)
	require.Equal(t, nbt.TypeObject, info.RootType)
	require.Equal(t, len(testnbt.MustEncode(t, tree, true)), info.Size)

	has, err := HasTree(db, "level")
	require.NoError(t, err)
	require.True(t, has)

	raw, err := GetTreeBytes(db, "level")
	require.NoError(t, err)
	require.Equal(t, testnbt.MustEncode(t, tree, true), raw)

	got, err := GetTree(db, codec, "level")
	require.NoError(t, err)
	require.True(t, nbt.Equal(tree, got))
	nbt.Delete(got)

	storedInfo, err := GetTreeInfo(db, "level")
	require.NoError(t, err)
	require.Equal(t, info.Name, storedInfo.Name)
	require.Equal(t, info.RootType, storedInfo.RootType)
	require.Equal(t, info.Size, storedInfo.Size)
	require.True(t, info.StoredAt.Equal(storedInfo.StoredAt))

	require.NoError(t, DeleteTree(db, "level"))
	has, err = HasTree(db, "level")
	require.NoError(t, err)
	require.False(t, has)

	_, err = GetTree(db, codec, "level")
	require.True(t, errors.Is(err, ErrTreeNotFound))
	_, err = GetTreeInfo(db, "level")
	require.True(t, errors.Is(err, ErrTreeNotFound))
	require.True(t, errors.Is(DeleteTree(db, "level"), ErrTreeNotFound))
}

func TestPutTree_Invalid(t *testing.T) {
	db, done := setupLevelDB(t)
	defer done()

	_, err := PutTree(db, nil, "", nbt.NewObject())
	require.True(t, errors.Is(err, ErrInvalidName))
	_, err = PutTree(db, nil, "worlds/one", nbt.NewObject())
	require.True(t, errors.Is(err, ErrInvalidName))

	_, err = PutTree(db, nil, "nil", nil)
	require.True(t, errors.Is(err, nbt.ErrNilTag))
	has, err := HasTree(db, "nil")
	require.NoError(t, err)
	require.False(t, has)
}

func TestStreamTreeInfo(t *testing.T) {
	db, done := setupLevelDB(t)
	defer done()

	names := []string{"b", "a", NewTreeName(), "c"}
	require.NoError(t, WithTx(db, func(tx *leveldb.Transaction) error {
		for _, name := range names {
			if _, err := PutTreeTx(tx, nil, name, nbt.NewInt32(1)); err != nil {
				return err
			}
		}
		return nil
	}))

	stream, err := StreamTreeInfo(db)
	require.NoError(t, err)
	var streamed []string
	for {
		info, err := stream.Next()
		require.NoError(t, err)
		if info == nil {
			break
		}
		require.Equal(t, nbt.TypeInt32, info.RootType)
		streamed = append(streamed, info.Name)
	}
	require.NoError(t, stream.Close())
	require.ElementsMatch(t, names, streamed)

	listed, err := ListTreeNames(db)
	require.NoError(t, err)
	require.Equal(t, streamed, listed)
}

func TestStoredBytesAreBigEndian(t *testing.T) {
	db, done := setupLevelDB(t)
	defer done()

	_, err := PutTree(db, &nbt.Codec{BigEndian: false}, "x", nbt.NewInt32(42))
	require.NoError(t, err)
	raw, err := GetTreeBytes(db, "x")
	require.NoError(t, err)
	require.Equal(t, []byte{0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x2a}, raw)
}

func TestCreateTree(t *testing.T) {
	db, done := setupLevelDB(t)
	defer done()

	_, err := CreateTree(db, nil, "level", nbt.NewInt32(1))
	require.NoError(t, err)

	_, err = CreateTree(db, nil, "level", nbt.NewInt32(2))
	require.True(t, errors.Is(err, ErrTreeExists))
	got, err := GetTree(db, nil, "level")
	require.NoError(t, err)
	v, _ := got.Int32()
	require.EqualValues(t, 1, v)
	nbt.Delete(got)

	_, err = CreateTree(db, nil, "bad/name", nbt.NewInt32(1))
	require.True(t, errors.Is(err, ErrInvalidName))
}
