package catalog

import (
	"context"
	"errors"
	"sync"

	"otica-store/internal/domain"
)

var (
	ErrCategoryNotFound = errors.New("categoria não encontrada")
)

// CategoryRepository defines read access to the categories. Slugs are unique
// and URL-safe.
type CategoryRepository interface {
	All(ctx context.Context) ([]domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
}

type memoryCategoryRepository struct {
	mu         sync.RWMutex
	categories []domain.Category
}

// NewMemoryCategoryRepository creates a CategoryRepository over the given seed.
func NewMemoryCategoryRepository(seed []domain.Category) CategoryRepository {
	categories := make([]domain.Category, len(seed))
	copy(categories, seed)
	return &memoryCategoryRepository{categories: categories}
}

func (r *memoryCategoryRepository) All(ctx context.Context) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

func (r *memoryCategoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.ID == id {
			category := c
			return &category, nil
		}
	}
	return nil, ErrCategoryNotFound
}

func (r *memoryCategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.Slug == slug {
			category := c
			return &category, nil
		}
	}
	return nil, ErrCategoryNotFound
}
