package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore keeps each namespace in a JSON file under a data directory.
// Writes go through a temp file and rename so a crash mid-write never leaves
// a torn document.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore creates the data directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(namespace string) string {
	// Namespaces may carry separators (e.g. "otica-cart-storage:user-1");
	// flatten them into a safe file name.
	name := strings.NewReplacer(":", "_", "/", "_", "\\", "_").Replace(namespace)
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) Load(ctx context.Context, namespace string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path(namespace))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to read state %q: %w", namespace, err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode state %q: %w", namespace, err)
	}
	return nil
}

func (s *FileStore) Save(ctx context.Context, namespace string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode state %q: %w", namespace, err)
	}

	path := s.path(namespace)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write state %q: %w", namespace, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to commit state %q: %w", namespace, err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(namespace)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete state %q: %w", namespace, err)
	}
	return nil
}
