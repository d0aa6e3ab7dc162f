package catalog

import (
	"context"
	"errors"
	"sync"

	"otica-store/internal/domain"
)

var (
	ErrStoreNotFound = errors.New("loja não encontrada")
)

// StoreRepository defines read access to the shop units.
type StoreRepository interface {
	All(ctx context.Context) ([]domain.Store, error)
	FindByID(ctx context.Context, id string) (*domain.Store, error)
}

type memoryStoreRepository struct {
	mu     sync.RWMutex
	stores []domain.Store
}

// NewMemoryStoreRepository creates a StoreRepository over the given seed.
func NewMemoryStoreRepository(seed []domain.Store) StoreRepository {
	stores := make([]domain.Store, len(seed))
	copy(stores, seed)
	return &memoryStoreRepository{stores: stores}
}

func (r *memoryStoreRepository) All(ctx context.Context) ([]domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Store, len(r.stores))
	copy(out, r.stores)
	return out, nil
}

func (r *memoryStoreRepository) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.stores {
		if s.ID == id {
			store := s
			return &store, nil
		}
	}
	return nil, ErrStoreNotFound
}
