package cli

import (
	"nbtkit/config"
	"nbtkit/store"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var ErrHomeInitialized = errors.New("home directory is already initialized")

// GetHomeDir returns the expanded value of the --home flag.
func GetHomeDir(cmd *cobra.Command) string {
	home, err := cmd.Flags().GetString(FlagHome)
	if err != nil {
		panic(err)
	}
	return config.ExpandHomePath(home)
}

// InitHomeDir creates the home directory named by --home along with its
// default config and an empty tree store. It refuses to touch an existing one.
func InitHomeDir(cmd *cobra.Command) (string, error) {
	homeDir := GetHomeDir(cmd)
	exists, err := config.HomeDirExists(homeDir)
	if err != nil {
		return "", err
	}
	if exists {
		return "", errors.Wrapf(ErrHomeInitialized, "%s", homeDir)
	}
	if err := config.InitHomeDir(homeDir); err != nil {
		return "", err
	}
	db, err := store.Open(config.ExpandDBPath(homeDir, config.DefaultConfig.Store.Path))
	if err != nil {
		return "", err
	}
	if err := db.Close(); err != nil {
		return "", errors.Wrap(err, "error closing database")
	}
	logger.Info("initialized home directory", "path", homeDir)
	return homeDir, nil
}
