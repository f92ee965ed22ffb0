package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/bullbear-client/internal/logger"
)

// fileSlotStorage keeps all slots in one JSON object on disk. Every Save
// rewrites the file through a temporary sibling and a rename, so a crash
// leaves either the old or the new content.
type fileSlotStorage struct {
	path string

	mu     sync.Mutex
	closed bool

	logger *logger.Logger
}

// NewFileSlotStorage returns a [SlotStorage] backed by the JSON file at path.
// The file and its directory are created on the first Save.
func NewFileSlotStorage(path string, log *logger.Logger) SlotStorage {
	return &fileSlotStorage{path: path, logger: log}
}

func (f *fileSlotStorage) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, ErrStorageClosed
	}

	slots, err := f.read()
	if err != nil {
		return nil, err
	}

	value, ok := slots[key]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return []byte(value), nil
}

func (f *fileSlotStorage) Save(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrStorageClosed
	}

	slots, err := f.read()
	if err != nil {
		// a corrupt file must not block new writes
		f.logger.Warn().Err(err).Str("path", f.path).Msg("discarding unreadable slot file")
		slots = make(map[string]string)
	}
	slots[key] = string(value)

	return f.write(slots)
}

func (f *fileSlotStorage) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

func (f *fileSlotStorage) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("%w: read slot file: %v", ErrSlotUnavailable, err)
	}

	slots := make(map[string]string)
	if len(data) == 0 {
		return slots, nil
	}
	if err = json.Unmarshal(data, &slots); err != nil {
		return nil, fmt.Errorf("%w: decode slot file: %v", ErrSlotUnavailable, err)
	}
	return slots, nil
}

func (f *fileSlotStorage) write(slots map[string]string) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create slot dir: %v", ErrSlotWriteFailed, err)
	}

	payload, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode slots: %v", ErrSlotWriteFailed, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrSlotWriteFailed, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err = tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write temp file: %v", ErrSlotWriteFailed, err)
	}
	if err = tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: chmod temp file: %v", ErrSlotWriteFailed, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: close temp file: %v", ErrSlotWriteFailed, err)
	}

	if err = os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("%w: replace slot file: %v", ErrSlotWriteFailed, err)
	}
	return nil
}
