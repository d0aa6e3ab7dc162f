// Package catalog is the mock data store behind the facade: in-memory,
// mutex-guarded collections seeded at startup. The repository interfaces are
// the seam a real backend would plug into.
package catalog

import (
	"context"
	"errors"
	"sync"

	"otica-store/internal/domain"
)

var (
	ErrProductNotFound = errors.New("produto não encontrado")
)

// ProductRepository defines read access to the product catalog.
type ProductRepository interface {
	All(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
}

type memoryProductRepository struct {
	mu       sync.RWMutex
	products []domain.Product
}

// NewMemoryProductRepository creates a ProductRepository over the given seed.
func NewMemoryProductRepository(seed []domain.Product) ProductRepository {
	products := make([]domain.Product, len(seed))
	copy(products, seed)
	return &memoryProductRepository{products: products}
}

// All returns a copy of the whole catalog.
func (r *memoryProductRepository) All(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// FindByID retrieves a product by exact identifier match.
func (r *memoryProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}
