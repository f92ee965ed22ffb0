package store

import (
	"context"
	"slices"
	"sync"
)

type memorySlotStorage struct {
	mu     sync.RWMutex
	slots  map[string][]byte
	closed bool
}

// NewMemorySlotStorage returns a [SlotStorage] that keeps values in process
// memory. Everything is lost on exit.
func NewMemorySlotStorage() SlotStorage {
	return &memorySlotStorage{slots: make(map[string][]byte)}
}

func (m *memorySlotStorage) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStorageClosed
	}
	value, ok := m.slots[key]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return slices.Clone(value), nil
}

func (m *memorySlotStorage) Save(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStorageClosed
	}
	m.slots[key] = slices.Clone(value)
	return nil
}

func (m *memorySlotStorage) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
