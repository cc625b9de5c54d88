// Package memory provides an in-memory storage.Fetcher for tests and local
// runs without an object store.
package memory

import (
	"context"
	"sync"

	"github.com/poiesic/lostvec/storage"
)

// Store is a map-backed storage.Fetcher.
// Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	objects  map[string][]byte
	maxBytes int64
}

// NewStore creates an empty store with the given object size cap.
// A non-positive cap disables the size check.
func NewStore(maxBytes int64) *Store {
	return &Store{
		objects:  make(map[string][]byte),
		maxBytes: maxBytes,
	}
}

// Put stores an object under key.
func (s *Store) Put(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
}

// Fetch retrieves an object's bytes, mirroring the MinIO backend's contract.
func (s *Store) Fetch(ctx context.Context, key string) (storage.FetchResult, error) {
	if key == "" {
		return storage.FetchResult{}, storage.ErrEmptyKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[key]
	if !ok {
		return storage.FetchResult{Status: storage.FetchNotFound}, nil
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return storage.FetchResult{Status: storage.FetchTooLarge}, nil
	}
	return storage.FetchResult{Status: storage.FetchOK, Data: data}, nil
}
