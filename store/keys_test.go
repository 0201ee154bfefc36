package store

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestPrefixer(t *testing.T) {
	base := Prefixer("foo")

	tests := []struct {
		in  []byte
		out string
	}{
		{
			base.Key("bar"),
			"foo/bar",
		},
		{
			base.Key(),
			"foo",
		},
		{
			base.Scan(),
			"foo/",
		},
		{
			base.Sub("bar").Key("baz"),
			"foo/bar/baz",
		},
	}
	for _, tt := range tests {
		require.Equal(t, tt.out, string(tt.in))
	}
	require.Equal(t, "level.dat", base.Sub("data").Name(base.Sub("data").Key("level.dat")))
}

func TestValidateTreeName(t *testing.T) {
	require.NoError(t, ValidateTreeName("level.dat"))
	require.NoError(t, ValidateTreeName(NewTreeName()))
	require.NoError(t, ValidateTreeName(strings.Repeat("a", MaxTreeNameLen)))

	for _, name := range []string{
		"",
		strings.Repeat("a", MaxTreeNameLen+1),
		"worlds/one",
		"tab\there",
	} {
		err := ValidateTreeName(name)
		require.True(t, errors.Is(err, ErrInvalidName), "name %q", name)
	}
}
