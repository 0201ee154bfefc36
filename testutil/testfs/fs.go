package testfs

import (
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"path/filepath"
	"os"
	"testing"
)

func NewTempDir(t *testing.T) (string, func()) {
	dir, err := ioutil.TempDir("", "nbttest_")
	require.NoError(t, err)
	return dir, func() {
		require.NoError(t, os.RemoveAll(dir))
	}
}

func NewTempFile(t *testing.T) (*os.File, func()) {
	f, err := ioutil.TempFile("", "nbttest_")
	require.NoError(t, err)
	return f, func() {
		require.NoError(t, f.Close())
		require.NoError(t, os.Remove(f.Name()))
	}
}

// WriteTempFile writes data to a new file in dir and returns its path.
func WriteTempFile(t *testing.T, dir string, name string, data []byte) string {
	p := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(p, data, 0644))
	return p
}
