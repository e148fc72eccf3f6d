package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenReadClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob")
	content := []byte("hello mapped world")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	m, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, content, m.Data)

	p := make([]byte, 5)
	n, err := m.ReadAt(p, 6)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte("mappe"), p)

	require.NoError(t, m.Close())
	assert.Nil(t, m.Data)
	// Double close is a no-op.
	require.NoError(t, m.Close())
}

func TestOpenEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	m, err := Open(path)
	require.NoError(t, err)
	defer m.Close()

	assert.Nil(t, m.Data)

	_, err = m.ReadAt(make([]byte, 1), 0)
	assert.Error(t, err)
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
