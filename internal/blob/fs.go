package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FSStore keeps blobs as files under a directory, one file per hash.
// Intended for deployments without an object store and for development.
type FSStore struct {
	dir string
}

// NewFSStore creates the backing directory when needed.
func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &FSStore{dir: dir}, nil
}

// Put writes data to <dir>/<hash>. An existing file is left untouched.
// The write goes through a temp file and rename so a crash never leaves
// a partially written blob under its final name.
func (s *FSStore) Put(_ context.Context, hash string, data []byte, _ string) error {
	if hash == "" || strings.ContainsAny(hash, "/\\") {
		return fmt.Errorf("invalid blob hash %q", hash)
	}

	path := filepath.Join(s.dir, hash)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	tmp, err := os.CreateTemp(s.dir, hash+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create blob temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write blob %s: %w", hash, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close blob temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to finalize blob %s: %w", hash, err)
	}
	return nil
}
