package store

import (
	"encoding/json"
	"time"

	"nbtkit/nbt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var (
	ErrTreeNotFound = errors.New("tree not found")
	ErrInvalidName  = errors.New("invalid tree name")
	ErrTreeExists   = errors.New("tree already exists")
)

// TreeInfo describes a stored tree without decoding it.
type TreeInfo struct {
	Name     string
	RootType nbt.Type
	Size     int
	StoredAt time.Time
}

type treeInfoJSON struct {
	Name     string    `json:"name"`
	RootType string    `json:"root_type"`
	Size     int       `json:"size"`
	StoredAt time.Time `json:"stored_at"`
}

func (i *TreeInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(&treeInfoJSON{
		Name:     i.Name,
		RootType: i.RootType.String(),
		Size:     i.Size,
		StoredAt: i.StoredAt,
	})
}

func (i *TreeInfo) UnmarshalJSON(b []byte) error {
	out := new(treeInfoJSON)
	if err := json.Unmarshal(b, out); err != nil {
		return err
	}
	typ, err := nbt.ParseType(out.RootType)
	if err != nil {
		return err
	}
	i.Name = out.Name
	i.RootType = typ
	i.Size = out.Size
	i.StoredAt = out.StoredAt
	return nil
}

var (
	treesPrefix    = Prefixer("trees")
	treeDataPrefix = treesPrefix.Sub("data")
	treeInfoPrefix = treesPrefix.Sub("info")
)

// NewTreeName returns a random name for trees stored without one.
func NewTreeName() string {
	return uuid.New().String()
}

// diskCodec copies the caller's limits and allocator but always stores trees
// big-endian, so a database never mixes byte orders.
func diskCodec(codec *nbt.Codec) *nbt.Codec {
	var c nbt.Codec
	if codec != nil {
		c = *codec
	}
	c.BigEndian = true
	return &c
}

func PutTree(db *leveldb.DB, codec *nbt.Codec, name string, tag *nbt.Tag) (*TreeInfo, error) {
	var info *TreeInfo
	err := WithTx(db, func(tx *leveldb.Transaction) error {
		var err error
		info, err = PutTreeTx(tx, codec, name, tag)
		return err
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// CreateTree is PutTree for names that must not already be stored. The
// existence check and the write share one transaction.
func CreateTree(db *leveldb.DB, codec *nbt.Codec, name string, tag *nbt.Tag) (*TreeInfo, error) {
	var info *TreeInfo
	err := WithTx(db, func(tx *leveldb.Transaction) error {
		var err error
		info, err = CreateTreeTx(tx, codec, name, tag)
		return err
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

func CreateTreeTx(tx *leveldb.Transaction, codec *nbt.Codec, name string, tag *nbt.Tag) (*TreeInfo, error) {
	has, err := tx.Has(treeDataPrefix.Key(name), nil)
	if err != nil {
		return nil, errors.Wrap(err, "error checking tree existence")
	}
	if has {
		return nil, errors.Wrapf(ErrTreeExists, "%q", name)
	}
	return PutTreeTx(tx, codec, name, tag)
}

func PutTreeTx(tx *leveldb.Transaction, codec *nbt.Codec, name string, tag *nbt.Tag) (*TreeInfo, error) {
	if err := ValidateTreeName(name); err != nil {
		return nil, err
	}
	c := diskCodec(codec)
	data, err := c.Encode(tag)
	if err != nil {
		return nil, errors.Wrap(err, "error encoding tree")
	}
	defer c.FreeBuffer(data)

	info := &TreeInfo{
		Name:     name,
		RootType: tag.Type(),
		Size:     len(data),
		StoredAt: time.Now(),
	}
	if err := tx.Put(treeDataPrefix.Key(name), data, nil); err != nil {
		return nil, errors.Wrap(err, "error writing tree data")
	}
	if err := tx.Put(treeInfoPrefix.Key(name), mustMarshalJSON(info), nil); err != nil {
		return nil, errors.Wrap(err, "error writing tree info")
	}
	logger.Debug("stored tree", "name", name, "size", len(data))
	return info, nil
}

// GetTree decodes the named tree. The caller owns the result and should
// release it with nbt.Delete.
func GetTree(db *leveldb.DB, codec *nbt.Codec, name string) (*nbt.Tag, error) {
	data, err := db.Get(treeDataPrefix.Key(name), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, errors.Wrapf(ErrTreeNotFound, "%q", name)
	}
	if err != nil {
		return nil, errors.Wrap(err, "error reading tree data")
	}
	tag, err := diskCodec(codec).Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "error decoding tree %q", name)
	}
	return tag, nil
}

// GetTreeBytes returns the stored big-endian encoding of the named tree.
func GetTreeBytes(db *leveldb.DB, name string) ([]byte, error) {
	data, err := db.Get(treeDataPrefix.Key(name), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, errors.Wrapf(ErrTreeNotFound, "%q", name)
	}
	if err != nil {
		return nil, errors.Wrap(err, "error reading tree data")
	}
	return data, nil
}

func GetTreeInfo(db *leveldb.DB, name string) (*TreeInfo, error) {
	b, err := db.Get(treeInfoPrefix.Key(name), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, errors.Wrapf(ErrTreeNotFound, "%q", name)
	}
	if err != nil {
		return nil, errors.Wrap(err, "error reading tree info")
	}
	info := new(TreeInfo)
	mustUnmarshalJSON(b, info)
	return info, nil
}

func HasTree(db *leveldb.DB, name string) (bool, error) {
	has, err := db.Has(treeDataPrefix.Key(name), nil)
	if err != nil {
		return false, errors.Wrap(err, "error checking tree existence")
	}
	return has, nil
}

func DeleteTree(db *leveldb.DB, name string) error {
	return WithTx(db, func(tx *leveldb.Transaction) error {
		return DeleteTreeTx(tx, name)
	})
}

func DeleteTreeTx(tx *leveldb.Transaction, name string) error {
	has, err := tx.Has(treeDataPrefix.Key(name), nil)
	if err != nil {
		return errors.Wrap(err, "error checking tree existence")
	}
	if !has {
		return errors.Wrapf(ErrTreeNotFound, "%q", name)
	}
	if err := tx.Delete(treeDataPrefix.Key(name), nil); err != nil {
		return errors.Wrap(err, "error deleting tree data")
	}
	if err := tx.Delete(treeInfoPrefix.Key(name), nil); err != nil {
		return errors.Wrap(err, "error deleting tree info")
	}
	logger.Debug("deleted tree", "name", name)
	return nil
}

type TreeInfoStream struct {
	iter iterator.Iterator
}

// Next returns the next tree's info in name order, or nil once the stream is
// exhausted.
func (s *TreeInfoStream) Next() (*TreeInfo, error) {
	if !s.iter.Next() {
		return nil, nil
	}
	info := new(TreeInfo)
	if err := json.Unmarshal(s.iter.Value(), info); err != nil {
		return nil, errors.Wrap(err, "error decoding tree info during stream")
	}
	return info, nil
}

func (s *TreeInfoStream) Close() error {
	s.iter.Release()
	return s.iter.Error()
}

func StreamTreeInfo(db *leveldb.DB) (*TreeInfoStream, error) {
	iter := db.NewIterator(util.BytesPrefix(treeInfoPrefix.Scan()), nil)
	return &TreeInfoStream{
		iter: iter,
	}, nil
}

// ListTreeNames returns the names of every stored tree in name order
// without reading their info records.
func ListTreeNames(db *leveldb.DB) ([]string, error) {
	iter := db.NewIterator(util.BytesPrefix(treeDataPrefix.Scan()), nil)
	defer iter.Release()
	var names []string
	for iter.Next() {
		names = append(names, treeDataPrefix.Name(iter.Key()))
	}
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(err, "error listing trees")
	}
	return names, nil
}

func mustMarshalJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func mustUnmarshalJSON(b []byte, v interface{}) {
	if err := json.Unmarshal(b, v); err != nil {
		panic(err)
	}
}
