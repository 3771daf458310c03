package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Keccak256Hex(t *testing.T) {
	// keccak-256 of the empty string
	assert.Equal(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", Keccak256Hex())
	assert.Equal(t, Keccak256Hex([]byte("ab")), Keccak256Hex([]byte("a"), []byte("b")))
}

func Test_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "checklist.md")
	require.NoError(t, WriteFile(path, []byte("# list\n")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# list\n", string(data))

	require.NoError(t, WriteFile(path, []byte("x")))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}
