package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"otica-store/internal/storage"
)

// Manager hands out one cart per owner, each persisted under its own
// namespace derived from DefaultNamespace.
type Manager struct {
	mu      sync.Mutex
	storage storage.Store
	logger  *zap.Logger
	carts   map[string]*Store
}

// NewManager creates a Manager over the given storage backend.
func NewManager(st storage.Store, logger *zap.Logger) *Manager {
	return &Manager{
		storage: st,
		logger:  logger,
		carts:   make(map[string]*Store),
	}
}

// Cart returns the owner's cart, loading it from storage on first access.
func (m *Manager) Cart(ctx context.Context, owner string) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.carts[owner]; ok {
		return s, nil
	}

	s, err := New(ctx, m.storage, DefaultNamespace+":"+owner, m.logger)
	if err != nil {
		return nil, err
	}
	m.carts[owner] = s
	return s, nil
}
