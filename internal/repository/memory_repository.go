package repository

import (
	"bytes"
	"context"
	"sync"
)

type memoryRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryRepository returns a process-local KVStore. Nothing survives a restart.
func NewMemoryRepository() KVStore {
	return &memoryRepository{data: make(map[string][]byte)}
}

func (r *memoryRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	val, ok := r.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(val), nil
}

func (r *memoryRepository) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = bytes.Clone(value)
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

func (r *memoryRepository) Close() error { return nil }
