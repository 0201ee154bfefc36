package store

import (
	"path/filepath"
	"testing"

	"nbtkit/nbt"
	"nbtkit/testutil/testfs"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
)

func TestWithTx(t *testing.T) {
	db, done := setupLevelDB(t)
	defer done()

	boom := errors.New("boom")
	err := WithTx(db, func(tx *leveldb.Transaction) error {
		if _, err := PutTreeTx(tx, nil, "discarded", nbt.NewInt8(1)); err != nil {
			return err
		}
		return boom
	})
	require.Equal(t, boom, err)
	has, err := HasTree(db, "discarded")
	require.NoError(t, err)
	require.False(t, has)

	require.Panics(t, func() {
		_ = WithTx(db, func(tx *leveldb.Transaction) error {
			if _, err := PutTreeTx(tx, nil, "panicked", nbt.NewInt8(1)); err != nil {
				return err
			}
			panic("halt")
		})
	})
	has, err = HasTree(db, "panicked")
	require.NoError(t, err)
	require.False(t, has)

	require.NoError(t, WithTx(db, func(tx *leveldb.Transaction) error {
		_, err := PutTreeTx(tx, nil, "kept", nbt.NewInt8(1))
		return err
	}))
	has, err = HasTree(db, "kept")
	require.NoError(t, err)
	require.True(t, has)
}

func TestOpenReadOnly(t *testing.T) {
	dir, done := testfs.NewTempDir(t)
	defer done()

	_, err := OpenReadOnly(filepath.Join(dir, "missing"))
	require.Error(t, err)

	p := filepath.Join(dir, "db")
	db, err := Open(p)
	require.NoError(t, err)
	_, err = PutTree(db, nil, "level", nbt.NewInt8(1))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	ro, err := OpenReadOnly(p)
	require.NoError(t, err)
	defer ro.Close()
	has, err := HasTree(ro, "level")
	require.NoError(t, err)
	require.True(t, has)
}
