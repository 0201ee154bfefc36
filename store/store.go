package store

import (
	"nbtkit/log"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

type TxCb func(tx *leveldb.Transaction) error

var logger = log.WithModule("store")

// Open opens or creates the tree database at path. Encoded trees are
// stored snappy-compressed.
func Open(path string) (*leveldb.DB, error) {
	return open(path, false)
}

// OpenReadOnly opens an existing tree database without taking write access.
func OpenReadOnly(path string) (*leveldb.DB, error) {
	return open(path, true)
}

func open(path string, readOnly bool) (*leveldb.DB, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{
		Compression:    opt.SnappyCompression,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "error opening database at %s", path)
	}
	logger.Debug("opened database", "path", path, "read_only", readOnly)
	return db, nil
}

// WithTx runs cb inside a transaction. The transaction commits when cb
// returns nil and is discarded when it errors or panics.
func WithTx(db *leveldb.DB, cb TxCb) (err error) {
	tx, err := db.OpenTransaction()
	if err != nil {
		return errors.Wrap(err, "error opening transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Discard()
			panic(p)
		}
		if err != nil {
			tx.Discard()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = errors.Wrap(cerr, "error committing transaction")
		}
	}()

	return cb(tx)
}
