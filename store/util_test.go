package store

import (
	"testing"

	"nbtkit/testutil/testfs"

	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
)

func setupLevelDB(t *testing.T) (*leveldb.DB, func()) {
	tmp, cleanup := testfs.NewTempDir(t)
	db, err := Open(tmp)
	require.NoError(t, err)
	return db, func() {
		require.NoError(t, db.Close())
		cleanup()
	}
}
