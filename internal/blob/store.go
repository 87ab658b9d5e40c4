// Package blob provides content-addressed storage for captured images.
// Blobs are keyed by the hex digest of their decompressed bytes, written
// once and never mutated or deleted, so storing the same hash twice is a
// no-op success.
package blob

import "context"

// Store persists image bytes under their content hash.
type Store interface {
	// Put stores data under hash. Idempotent: a hash that already
	// exists is left untouched and Put returns nil.
	Put(ctx context.Context, hash string, data []byte, contentType string) error
}
