// Package store keeps the application's top-level records in memory and writes every
// mutation through to a durable Backend.
//
// The in-memory copy is authoritative for the running process: a failed write is reported
// to the caller but never rolls the value back.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

var (
	ErrWriteFailed   = errors.New("record write failed")
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrClosed        = errors.New("record store closed")
)

// Backend persists serialized records by key.
type Backend interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	PutMany(values map[string][]byte) error
	Close() error
}

type Store struct {
	backend Backend
	logger  *zap.Logger

	mu     sync.Mutex
	values map[string][]byte
	dirty  map[string]struct{}
	closed bool
}

func New(backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		backend: backend,
		logger:  logger,
		values:  make(map[string][]byte),
		dirty:   make(map[string]struct{}),
	}
}

// Load returns the record stored under key. Missing, unreadable or corrupt records resolve
// to fallback, which then becomes the persisted initial value.
func Load[T any](store *Store, key string, fallback T) T {
	store.mu.Lock()
	defer store.mu.Unlock()

	return loadLocked(store, key, fallback)
}

// Save replaces the record under key. The new value is visible to Load immediately, even
// when the durable write fails.
func Save[T any](store *Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", key, err)
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	return store.putLocked(key, raw)
}

// Update applies updater to the current record and saves the result.
func Update[T any](store *Store, key string, fallback T, updater func(T) T) (T, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	next := updater(loadLocked(store, key, fallback))
	raw, err := json.Marshal(next)
	if err != nil {
		return next, fmt.Errorf("encode record %s: %w", key, err)
	}
	return next, store.putLocked(key, raw)
}

// SaveMany replaces several records in one backend write.
func (store *Store) SaveMany(values map[string]any) error {
	encoded := make(map[string][]byte, len(values))
	for key, value := range values {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode record %s: %w", key, err)
		}
		encoded[key] = raw
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	for key, raw := range encoded {
		store.values[key] = raw
	}
	return store.putManyLocked(encoded)
}

// Dirty lists records whose latest value has not reached the backend.
func (store *Store) Dirty() []string {
	store.mu.Lock()
	defer store.mu.Unlock()

	keys := make([]string, 0, len(store.dirty))
	for key := range store.dirty {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Flush retries the durable write of every dirty record.
func (store *Store) Flush() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if len(store.dirty) == 0 {
		return nil
	}
	pending := make(map[string][]byte, len(store.dirty))
	for key := range store.dirty {
		pending[key] = store.values[key]
	}
	return store.putManyLocked(pending)
}

// Close flushes pending records and releases the backend. Later writes fail with ErrClosed.
func (store *Store) Close() error {
	flushErr := store.Flush()

	store.mu.Lock()
	defer store.mu.Unlock()

	if store.closed {
		return flushErr
	}
	store.closed = true
	if err := store.backend.Close(); err != nil {
		return errors.Join(flushErr, fmt.Errorf("close backend: %w", err))
	}
	return flushErr
}

func loadLocked[T any](store *Store, key string, fallback T) T {
	if raw, ok := store.values[key]; ok {
		var value T
		if err := json.Unmarshal(raw, &value); err == nil {
			return value
		}
	}

	raw, found, err := store.backend.Get(key)
	if err != nil {
		// The stored value may be intact; keep the fallback in memory only.
		store.logger.Warn("record read failed, using default", zap.String("key", key), zap.Error(err))
		store.cacheFallbackLocked(key, fallback, false)
		return fallback
	}
	if found && !isNullRecord(raw) {
		var value T
		if err := json.Unmarshal(raw, &value); err == nil {
			store.values[key] = raw
			return value
		}
		store.logger.Warn("corrupt record replaced by default", zap.String("key", key))
	}

	store.cacheFallbackLocked(key, fallback, true)
	return fallback
}

func (store *Store) cacheFallbackLocked(key string, fallback any, persist bool) {
	raw, err := json.Marshal(fallback)
	if err != nil {
		store.logger.Error("encode default record", zap.String("key", key), zap.Error(err))
		return
	}
	store.values[key] = raw
	if !persist {
		return
	}
	if err := store.putLocked(key, raw); err != nil {
		store.logger.Warn("persist default record", zap.String("key", key), zap.Error(err))
	}
}

func (store *Store) putLocked(key string, raw []byte) error {
	store.values[key] = raw
	if store.closed {
		store.dirty[key] = struct{}{}
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, key, ErrClosed)
	}
	if err := store.backend.Put(key, raw); err != nil {
		store.dirty[key] = struct{}{}
		store.logger.Warn("record write failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, key, err)
	}
	delete(store.dirty, key)
	return nil
}

func (store *Store) putManyLocked(values map[string][]byte) error {
	if store.closed {
		for key := range values {
			store.dirty[key] = struct{}{}
		}
		return fmt.Errorf("%w: %w", ErrWriteFailed, ErrClosed)
	}
	if err := store.backend.PutMany(values); err != nil {
		for key := range values {
			store.dirty[key] = struct{}{}
		}
		store.logger.Warn("batch record write failed", zap.Int("records", len(values)), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	for key := range values {
		delete(store.dirty, key)
	}
	return nil
}

func isNullRecord(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
