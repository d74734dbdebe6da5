package storage

import (
	"context"
	"sync"
)

// MemoryStorage is an in-memory implementation of ObjectStorage. It keeps
// uploaded objects in a map keyed by the returned URL, making it useful for
// testing and local development. Safe for concurrent use.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryStorage creates a new in-memory object store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string][]byte)}
}

// Upload stores data and returns a memory:// URL for it.
func (m *MemoryStorage) Upload(_ context.Context, bucket, fileName string, data []byte) (string, error) {
	url := "memory://" + bucket + "/" + objectKey(fileName)

	m.mu.Lock()
	defer m.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	m.objects[url] = buf
	return url, nil
}

// Get retrieves a previously uploaded object by URL.
func (m *MemoryStorage) Get(url string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[url]
	return data, ok
}

// Len returns the number of stored objects.
func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
