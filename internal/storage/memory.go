package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"
)

// Object is a blob held by MemoryStore.
type Object struct {
	ContentType string
	Data        []byte
}

// MemoryStore is an in-process BlobStore for local runs and tests. URL
// returns a stable link under BaseURL.
type MemoryStore struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string]Object
}

var _ BlobStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store serving links under baseURL.
func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{BaseURL: baseURL, objects: make(map[string]Object)}
}

func (m *MemoryStore) Put(_ context.Context, key, contentType string, body io.Reader) error {
	if key == "" {
		return ErrEmptyKey
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	m.mu.Lock()
	m.objects[key] = Object{ContentType: contentType, Data: data}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) URL(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	return m.BaseURL + "/" + (&url.URL{Path: key}).EscapedPath(), nil
}

// Get returns the stored object.
func (m *MemoryStore) Get(key string) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj, ok
}

// Len is the number of stored objects.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
