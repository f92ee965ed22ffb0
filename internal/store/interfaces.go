package store

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/slot_storage_mock.go -package=mock

// SlotStorage is a durable key-value substrate holding one opaque value per
// key. Writes replace the whole value.
type SlotStorage interface {
	// Load returns the value stored under key, or [ErrSlotNotFound].
	Load(ctx context.Context, key string) ([]byte, error)
	// Save replaces the value stored under key.
	Save(ctx context.Context, key string, value []byte) error
	// Close releases the underlying resources.
	Close() error
}
