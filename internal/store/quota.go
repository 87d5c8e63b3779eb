package store

import (
	"fmt"
	"sync"
)

// QuotaBackend rejects writes that would grow the stored records past maxBytes, the way
// browser local storage refuses writes once its quota is used up.
type QuotaBackend struct {
	next     Backend
	maxBytes int

	mu    sync.Mutex
	sizes map[string]int
}

func NewQuotaBackend(next Backend, maxBytes int) *QuotaBackend {
	return &QuotaBackend{
		next:     next,
		maxBytes: maxBytes,
		sizes:    make(map[string]int),
	}
}

func (backend *QuotaBackend) Get(key string) ([]byte, bool, error) {
	raw, found, err := backend.next.Get(key)
	if err == nil && found {
		backend.mu.Lock()
		backend.sizes[key] = len(raw)
		backend.mu.Unlock()
	}
	return raw, found, err
}

func (backend *QuotaBackend) Put(key string, value []byte) error {
	return backend.PutMany(map[string][]byte{key: value})
}

func (backend *QuotaBackend) PutMany(values map[string][]byte) error {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	total := 0
	for key, size := range backend.sizes {
		if _, replaced := values[key]; !replaced {
			total += size
		}
	}
	for _, value := range values {
		total += len(value)
	}
	if backend.maxBytes > 0 && total > backend.maxBytes {
		return fmt.Errorf("%w: %d of %d bytes", ErrQuotaExceeded, total, backend.maxBytes)
	}

	if err := backend.next.PutMany(values); err != nil {
		return err
	}
	for key, value := range values {
		backend.sizes[key] = len(value)
	}
	return nil
}

func (backend *QuotaBackend) Close() error {
	return backend.next.Close()
}
