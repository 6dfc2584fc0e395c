package fileurl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteIfMissing(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "config", "config.yaml")
	assert.False(t, IsExist(dst))

	written, err := WriteIfMissing(dst, []byte("a: 1\n"), 0644)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = WriteIfMissing(dst, []byte("a: 2\n"), 0644)
	require.NoError(t, err)
	assert.False(t, written)

	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", string(b))
}

func TestEnsureDirs(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "logs")
	b := filepath.Join(root, "db", "nested")
	require.NoError(t, EnsureDirs(0754, "", ".", a, b))
	assert.True(t, IsExist(a))
	assert.True(t, IsExist(b))
}
