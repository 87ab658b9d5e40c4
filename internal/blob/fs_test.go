package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStore_Put_WhenNewHash_ThenWritesFile(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	store, err := NewFSStore(dir)
	require.NoError(t, err)

	// Act
	err = store.Put(context.Background(), "abc123", []byte("image-bytes"), "image/png")

	// Assert
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "abc123"))
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)
}

func TestFSStore_Put_WhenHashExists_ThenNoOpSuccess(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	store, err := NewFSStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), "abc123", []byte("original"), "image/png"))

	// Act: second put with different bytes must not clobber the original
	err = store.Put(context.Background(), "abc123", []byte("changed"), "image/png")

	// Assert
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "abc123"))
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), data)
}

func TestFSStore_Put_WhenHashContainsPathSeparator_ThenRejects(t *testing.T) {
	// Arrange
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	// Act
	err = store.Put(context.Background(), "../escape", []byte("x"), "image/png")

	// Assert
	assert.Error(t, err)
}

func TestNewFSStore_WhenDirectoryMissing_ThenCreatesIt(t *testing.T) {
	// Arrange
	dir := filepath.Join(t.TempDir(), "nested", "blobs")

	// Act
	_, err := NewFSStore(dir)

	// Assert
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
