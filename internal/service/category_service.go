package service

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"otica-store/internal/catalog"
	"otica-store/internal/domain"
	"otica-store/internal/fault"
)

const defaultPopularLimit = 6

// CategoryService exposes the category operations.
type CategoryService struct {
	categories catalog.CategoryRepository
	injector   *fault.Injector
	profile    fault.Profile
	logger     *zap.Logger
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(categories catalog.CategoryRepository, injector *fault.Injector, profile fault.Profile, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		injector:   injector,
		profile:    profile,
		logger:     logger,
	}
}

// List returns active categories, largest product count first.
func (s *CategoryService) List(ctx context.Context) (domain.Response[[]domain.Category], error) {
	if err := s.injector.Inject(ctx, s.profile, "Erro ao carregar categorias. Tente novamente."); err != nil {
		return domain.Response[[]domain.Category]{}, err
	}

	active, err := s.activeByCount(ctx, false)
	if err != nil {
		return domain.Response[[]domain.Category]{}, err
	}
	return domain.OK(active), nil
}

// Get retrieves one category by ID; inactive categories are rejected.
func (s *CategoryService) Get(ctx context.Context, id string) (domain.Response[domain.Category], error) {
	if err := s.injector.Inject(ctx, s.profile, "Erro ao carregar categoria."); err != nil {
		return domain.Response[domain.Category]{}, err
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if err == catalog.ErrCategoryNotFound {
			return domain.Fail[domain.Category]("Categoria não encontrada"), nil
		}
		return domain.Response[domain.Category]{}, err
	}
	if !category.IsActive {
		return domain.Fail[domain.Category]("Categoria não disponível"), nil
	}

	return domain.OK(*category), nil
}

// BySlug retrieves one active category by its URL slug. Inactive categories
// read as not found.
func (s *CategoryService) BySlug(ctx context.Context, slug string) (domain.Response[domain.Category], error) {
	if err := s.injector.Inject(ctx, s.profile, "Erro ao carregar categoria."); err != nil {
		return domain.Response[domain.Category]{}, err
	}

	category, err := s.categories.FindBySlug(ctx, slug)
	if err == nil && !category.IsActive {
		err = catalog.ErrCategoryNotFound
	}
	if err != nil {
		if err == catalog.ErrCategoryNotFound {
			return domain.Fail[domain.Category]("Categoria não encontrada"), nil
		}
		return domain.Response[domain.Category]{}, err
	}

	return domain.OK(*category), nil
}

// WithProducts returns active categories that have at least one product,
// largest count first.
func (s *CategoryService) WithProducts(ctx context.Context) (domain.Response[[]domain.Category], error) {
	if err := s.injector.Inject(ctx, s.profile, "Erro ao carregar categorias com produtos."); err != nil {
		return domain.Response[[]domain.Category]{}, err
	}

	categories, err := s.activeByCount(ctx, true)
	if err != nil {
		return domain.Response[[]domain.Category]{}, err
	}
	return domain.OK(categories), nil
}

// Popular returns the most-stocked active categories.
func (s *CategoryService) Popular(ctx context.Context, limit int) (domain.Response[[]domain.Category], error) {
	if err := s.injector.Inject(ctx, s.profile, "Erro ao carregar categorias populares."); err != nil {
		return domain.Response[[]domain.Category]{}, err
	}

	categories, err := s.activeByCount(ctx, true)
	if err != nil {
		return domain.Response[[]domain.Category]{}, err
	}

	if limit < 1 {
		limit = defaultPopularLimit
	}
	if len(categories) > limit {
		categories = categories[:limit]
	}
	return domain.OK(categories), nil
}

// Search matches the query against category names and descriptions. A blank
// query yields an empty successful result.
func (s *CategoryService) Search(ctx context.Context, query string) (domain.Response[[]domain.Category], error) {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return domain.OK([]domain.Category{}), nil
	}

	if err := s.injector.Inject(ctx, s.profile, "Erro ao buscar categorias."); err != nil {
		return domain.Response[[]domain.Category]{}, err
	}

	categories, err := s.categories.All(ctx)
	if err != nil {
		return domain.Response[[]domain.Category]{}, err
	}

	matched := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		if !c.IsActive {
			continue
		}
		if strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.Description), term) {
			matched = append(matched, c)
		}
	}

	return domain.OK(matched), nil
}

func (s *CategoryService) activeByCount(ctx context.Context, withProductsOnly bool) ([]domain.Category, error) {
	categories, err := s.categories.All(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		if !c.IsActive {
			continue
		}
		if withProductsOnly && c.ProductCount == 0 {
			continue
		}
		active = append(active, c)
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].ProductCount > active[j].ProductCount
	})
	return active, nil
}
