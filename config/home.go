package config

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// DBPath is the store directory, relative to the home directory, used when
// the config does not name one.
const DBPath = "db"

var ErrNoHomeDir = errors.New("home directory does not exist - try running nbt init")

// ExpandHomePath expands a leading ~ in p.
func ExpandHomePath(p string) string {
	res, err := homedir.Expand(p)
	if err != nil {
		panic(err)
	}
	return res
}

// ExpandDBPath resolves the configured store path against the home
// directory. Absolute and ~-prefixed paths are used as given.
func ExpandDBPath(homePath string, storePath string) string {
	if storePath == "" {
		storePath = DBPath
	}
	storePath = ExpandHomePath(storePath)
	if filepath.IsAbs(storePath) {
		return storePath
	}
	return filepath.Join(homePath, storePath)
}

func HomeDirExists(homePath string) (bool, error) {
	stat, err := os.Stat(homePath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "error checking home directory")
	}
	if !stat.IsDir() {
		return false, errors.Errorf("home dir path %s exists, but is a file", homePath)
	}
	return true, nil
}

func EnsureHomeDir(homePath string) error {
	exists, err := HomeDirExists(homePath)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNoHomeDir
	}
	return nil
}

// InitHomeDir creates the home directory, its default store directory and a
// default config file.
func InitHomeDir(homePath string) error {
	if err := os.MkdirAll(homePath, 0700); err != nil {
		return errors.Wrap(err, "error creating home directory")
	}
	if err := os.MkdirAll(ExpandDBPath(homePath, DefaultConfig.Store.Path), 0700); err != nil {
		return errors.Wrap(err, "error creating store directory")
	}
	return WriteDefaultConfigFile(homePath)
}
