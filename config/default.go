package config

import (
	"bytes"
	"io"
	"os"
	"path"
	"text/template"

	"nbtkit/log"
	"nbtkit/nbt"

	"github.com/pkg/errors"
)

const ConfigFile = "config.toml"

var DefaultConfig = Config{
	LogLevel: log.LevelInfo.String(),
	Codec: CodecConfig{
		BigEndian:       true,
		InitialCapacity: nbt.DefaultInitialCapacity,
		MaxDepth:        nbt.DefaultMaxDepth,
		Strict:          false,
	},
	Store: StoreConfig{
		Path: DBPath,
	},
}

const defaultConfigTemplateText = `# nbt Config File

# Sets the log level. Can be one of the following values:
# - error
# - warn
# - info
# - debug
# - trace
log_level = "{{.LogLevel}}"

# Configures how tag trees are read and written.
[codec]
  # Sets the byte order of multi-byte fields. Files produced by most
  # desktop tools are big-endian; set this to false for little-endian data.
  big_endian = {{.Codec.BigEndian}}
  # Sets the size in bytes of the encoder's first output buffer. The
  # buffer doubles in size whenever it fills up.
  initial_capacity = {{.Codec.InitialCapacity}}
  # Sets the deepest nesting of lists and objects that will be decoded.
  # Inputs nested more deeply are rejected.
  max_depth = {{.Codec.MaxDepth}}
  # Rejects inputs with bytes left over after the root tag.
  strict = {{.Codec.Strict}}

# Configures the local tree store.
[store]
  # Sets the directory of the tree database. Relative paths are resolved
  # against the home directory.
  path = "{{.Store.Path}}"
`

var defaultConfigTemplate *template.Template

func GenerateDefaultConfigFile() []byte {
	buf := new(bytes.Buffer)
	if err := defaultConfigTemplate.Execute(buf, DefaultConfig); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func ReadConfigFile(homeDir string) (*Config, error) {
	f, err := os.OpenFile(path.Join(homeDir, ConfigFile), os.O_RDONLY, 0755)
	if err != nil {
		return nil, errors.Wrap(err, "error opening config file for reading")
	}
	defer f.Close()
	cfg, err := ReadConfig(f)
	if err != nil {
		return nil, errors.Wrap(err, "error reading config file")
	}
	return cfg, nil
}

func WriteDefaultConfigFile(homeDir string) error {
	f, err := os.OpenFile(path.Join(homeDir, ConfigFile), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return errors.Wrap(err, "error opening config file for writing")
	}
	defer f.Close()
	rd := bytes.NewReader(GenerateDefaultConfigFile())
	if _, err := io.Copy(f, rd); err != nil {
		return errors.Wrap(err, "error writing config file")
	}
	return nil
}

func init() {
	tmpl := template.New("defaultConfig")
	t, err := tmpl.Parse(defaultConfigTemplateText)
	if err != nil {
		panic(err)
	}
	defaultConfigTemplate = t
}
