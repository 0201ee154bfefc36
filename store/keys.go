package store

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

const MaxTreeNameLen = 255

// Prefixer builds slash-separated keys under a fixed prefix.
type Prefixer string

func (p Prefixer) Key(parts ...string) []byte {
	return []byte(strings.Join(append([]string{string(p)}, parts...), "/"))
}

// Sub returns a Prefixer nested one level below p.
func (p Prefixer) Sub(part string) Prefixer {
	return Prefixer(p.Key(part))
}

// Scan is the key range holding every key below p.
func (p Prefixer) Scan() []byte {
	return p.Key("")
}

// Name strips p from a key produced by p.Key(name).
func (p Prefixer) Name(key []byte) string {
	return strings.TrimPrefix(string(key), string(p.Scan()))
}

// ValidateTreeName rejects names that cannot be stored. Names must be
// non-empty, at most MaxTreeNameLen bytes, and free of slashes and control
// characters.
func ValidateTreeName(name string) error {
	if name == "" {
		return errors.Wrap(ErrInvalidName, "name is empty")
	}
	if len(name) > MaxTreeNameLen {
		return errors.Wrapf(ErrInvalidName, "name is longer than %d bytes", MaxTreeNameLen)
	}
	for _, r := range name {
		if r == '/' || unicode.IsControl(r) {
			return errors.Wrapf(ErrInvalidName, "name %q contains %q", name, r)
		}
	}
	return nil
}
