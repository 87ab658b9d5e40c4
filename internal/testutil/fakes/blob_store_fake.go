package fakes

import (
	"context"
	"sync"
)

// FakeBlobStore is an in-memory content-addressed blob store.
type FakeBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte

	PutErr error
}

func NewFakeBlobStore() *FakeBlobStore {
	return &FakeBlobStore{blobs: make(map[string][]byte)}
}

func (f *FakeBlobStore) Put(_ context.Context, hash string, data []byte, _ string) error {
	if f.PutErr != nil {
		return f.PutErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.blobs[hash]; ok {
		return nil
	}
	cpy := make([]byte, len(data))
	copy(cpy, data)
	f.blobs[hash] = cpy
	return nil
}

// Get returns the stored bytes for hash, if any.
func (f *FakeBlobStore) Get(hash string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.blobs[hash]
	return data, ok
}

// Len reports how many distinct blobs are stored.
func (f *FakeBlobStore) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.blobs)
}
