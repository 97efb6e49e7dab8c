package storage

import (
	"context"
	"errors"
	"sync"
)

// Slot keys. The _v1 suffix lets a future incompatible schema live next to
// data written by this one.
const (
	KeyChecklist = "ploegwissel_checklist_v1"
	KeyCompany   = "ploegwissel_company_v1"
	KeyLogo      = "ploegwissel_logo_v1"
)

// ErrNotFound is returned by Store.Get for a slot that was never written
var ErrNotFound = errors.New("slot not found")

// Store is the durable key/value store behind the gateway
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// MemoryStore keeps slots in process memory (tests, --memory)
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.slots[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
