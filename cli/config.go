package cli

import (
	"nbtkit/config"
	"nbtkit/log"
	"nbtkit/nbt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// LoadConfig reads the config file from the home directory, falling back to
// the defaults when the home directory has not been initialized. Flags set
// on the command line override the file.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	homeDir := GetHomeDir(cmd)
	exists, err := config.HomeDirExists(homeDir)
	if err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig
	if exists {
		fileCfg, err := config.ReadConfigFile(homeDir)
		if err != nil {
			return nil, err
		}
		cfg = *fileCfg
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed(FlagBigEndian) {
		v, err := flags.GetBool(FlagBigEndian)
		if err != nil {
			return err
		}
		cfg.Codec.BigEndian = v
	}
	if flags.Changed(FlagStrict) {
		v, err := flags.GetBool(FlagStrict)
		if err != nil {
			return err
		}
		cfg.Codec.Strict = v
	}
	if flags.Changed(FlagMaxDepth) {
		v, err := flags.GetInt(FlagMaxDepth)
		if err != nil {
			return err
		}
		cfg.Codec.MaxDepth = v
	}
	if flags.Changed(FlagLogLevel) {
		v, err := flags.GetString(FlagLogLevel)
		if err != nil {
			return err
		}
		cfg.LogLevel = v
	}
	return cfg.Validate()
}

// SetupLogging applies the configured log level.
func SetupLogging(cfg *config.Config) error {
	level, err := log.NewLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "error parsing log level")
	}
	log.SetLevel(level)
	return nil
}

func NewCodec(cmd *cobra.Command) (*nbt.Codec, error) {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return cfg.NewCodec(), nil
}
