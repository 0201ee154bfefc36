package config

import (
	"io"

	"nbtkit/log"
	"nbtkit/nbt"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

type Config struct {
	LogLevel string      `mapstructure:"log_level"`
	Codec    CodecConfig `mapstructure:"codec"`
	Store    StoreConfig `mapstructure:"store"`
}

type CodecConfig struct {
	BigEndian       bool `mapstructure:"big_endian"`
	InitialCapacity int  `mapstructure:"initial_capacity"`
	MaxDepth        int  `mapstructure:"max_depth"`
	Strict          bool `mapstructure:"strict"`
}

type StoreConfig struct {
	// Path is relative to the home directory unless absolute.
	Path string `mapstructure:"path"`
}

func ReadConfig(r io.Reader) (*Config, error) {
	decoder := toml.NewDecoder(r)
	decoder.SetTagName("mapstructure")
	config := &Config{}
	if err := decoder.Decode(config); err != nil {
		return nil, errors.Wrap(err, "error decoding config file")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if _, err := log.NewLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "invalid log_level")
	}
	if c.Codec.InitialCapacity < 0 {
		return errors.New("codec.initial_capacity must not be negative")
	}
	if c.Codec.MaxDepth < 0 {
		return errors.New("codec.max_depth must not be negative")
	}
	return nil
}

// NewCodec builds the codec settings described by the config. Zero values
// fall back to the codec's own defaults.
func (c *Config) NewCodec() *nbt.Codec {
	return &nbt.Codec{
		BigEndian:       c.Codec.BigEndian,
		InitialCapacity: c.Codec.InitialCapacity,
		MaxDepth:        c.Codec.MaxDepth,
		Strict:          c.Codec.Strict,
	}
}
