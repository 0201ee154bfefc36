package cli

import (
	"io"
	"io/ioutil"
	"os"

	"nbtkit/log"
	"nbtkit/nbt"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

// StdinPath is the file argument that selects standard input.
const StdinPath = "-"

var logger = log.WithModule("nbt-cli")

// ReadInput returns the contents of the named file, or of stdin when path is
// StdinPath. Reading binary data from an interactive terminal is refused.
func ReadInput(path string, stdin *os.File) ([]byte, error) {
	if path != StdinPath {
		data, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "error reading %s", path)
		}
		return data, nil
	}
	if isatty.IsTerminal(stdin.Fd()) || isatty.IsCygwinTerminal(stdin.Fd()) {
		return nil, errors.New("refusing to read binary data from a terminal; pipe a file or pass a path")
	}
	data, err := ioutil.ReadAll(io.Reader(stdin))
	if err != nil {
		return nil, errors.Wrap(err, "error reading stdin")
	}
	return data, nil
}

// DecodeFile reads and decodes the named file.
func DecodeFile(codec *nbt.Codec, path string) (*nbt.Tag, error) {
	data, err := ReadInput(path, os.Stdin)
	if err != nil {
		return nil, err
	}
	tag, err := codec.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "error decoding %s", path)
	}
	logger.Debug("decoded file", "path", path, "bytes", len(data), "root", tag.Type().String())
	return tag, nil
}
