package store

import "sync"

// MemoryBackend keeps records for the lifetime of the process only.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

func (backend *MemoryBackend) Get(key string) ([]byte, bool, error) {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	raw, ok := backend.values[key]
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(raw), true, nil
}

func (backend *MemoryBackend) Put(key string, value []byte) error {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	backend.values[key] = cloneBytes(value)
	return nil
}

func (backend *MemoryBackend) PutMany(values map[string][]byte) error {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	for key, value := range values {
		backend.values[key] = cloneBytes(value)
	}
	return nil
}

func (backend *MemoryBackend) Close() error {
	return nil
}

func cloneBytes(value []byte) []byte {
	if value == nil {
		return nil
	}
	clone := make([]byte, len(value))
	copy(clone, value)
	return clone
}
