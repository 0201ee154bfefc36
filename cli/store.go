package cli

import (
	"io/ioutil"

	"nbtkit/config"
	"nbtkit/nbt"
	"nbtkit/store"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/syndtr/goleveldb/leveldb"
)

// OpenStore opens the tree store configured for the command's home
// directory. The home directory must already be initialized.
func OpenStore(cmd *cobra.Command, cfg *config.Config) (*leveldb.DB, error) {
	return openStore(cmd, cfg, store.Open)
}

// OpenStoreReadOnly is OpenStore for commands that never write.
func OpenStoreReadOnly(cmd *cobra.Command, cfg *config.Config) (*leveldb.DB, error) {
	return openStore(cmd, cfg, store.OpenReadOnly)
}

func openStore(cmd *cobra.Command, cfg *config.Config, open func(string) (*leveldb.DB, error)) (*leveldb.DB, error) {
	homeDir := GetHomeDir(cmd)
	if err := config.EnsureHomeDir(homeDir); err != nil {
		return nil, err
	}
	db, err := open(config.ExpandDBPath(homeDir, cfg.Store.Path))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open store")
	}
	return db, nil
}

// ExportTree writes the stored tree name to path in codec's byte order.
// Big-endian exports copy the stored bytes without decoding them.
func ExportTree(db *leveldb.DB, codec *nbt.Codec, name string, path string) error {
	if codec.BigEndian {
		data, err := store.GetTreeBytes(db, name)
		if err != nil {
			return err
		}
		return writeOutput(path, data)
	}

	tag, err := store.GetTree(db, codec, name)
	if err != nil {
		return err
	}
	defer nbt.Delete(tag)
	data, err := codec.Encode(tag)
	if err != nil {
		return err
	}
	defer codec.FreeBuffer(data)
	return writeOutput(path, data)
}

func writeOutput(path string, data []byte) error {
	if err := ioutil.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "error writing %s", path)
	}
	logger.Debug("wrote file", "path", path, "bytes", len(data))
	return nil
}
