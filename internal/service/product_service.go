// Package service is the API facade: a uniform asynchronous contract over
// the catalog, independent of how the catalog is sourced. Every operation
// reports failure on two distinct channels. A returned error is a transport
// failure, transient and safe to retry unchanged. An envelope with
// Success=false is a semantic rejection and needs changed input.
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

const (
	defaultPageLimit     = 10
	defaultFeaturedLimit = 8
	defaultRelatedLimit  = 4
	defaultSearchLimit   = 10
)

// ProductService exposes the product catalog operations.
type ProductService struct {
	products catalog.ProductRepository
	injector *fault.Injector
	profile  fault.Profile
	logger   *zap.Logger
}

// NewProductService creates a ProductService. The fault profile applies to
// every call; pass fault.None for deterministic behavior.
func NewProductService(products catalog.ProductRepository, injector *fault.Injector, profile fault.Profile, logger *zap.Logger) *ProductService {
	return &ProductService{
		products: products,
		injector: injector,
		profile:  profile,
		logger:   logger,
	}
}

// List applies the filters conjunctively over the catalog and paginates the
// result. Pages past the end come back empty with Success still true.
func (s *ProductService) List(ctx context.Context, filters domain.ProductFilters, page, limit int) (domain.Paginated[domain.Product], error) {
	if err := s.injector.Inject(ctx, s.profile, "Erro de conexão com o servidor. Tente novamente."); err != nil {
		return domain.Paginated[domain.Product]{}, err
	}

	products, err := s.products.All(ctx)
	if err != nil {
		return domain.Paginated[domain.Product]{}, err
	}

	filtered := filterProducts(products, filters)

	if limit < 1 {
		limit = defaultPageLimit
	}
	return domain.Paginate(filtered, page, limit), nil
}

// Get retrieves a single product. A missing product is a semantic rejection,
// not an error.
func (s *ProductService) Get(ctx context.Context, id string) (domain.Response[domain.Product], error) {
	if err := s.injector.Inject(ctx, s.profile, "Erro ao carregar produto. Tente novamente."); err != nil {
		return domain.Response[domain.Product]{}, err
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if err == catalog.ErrProductNotFound {
			return domain.Fail[domain.Product]("Produto não encontrado"), nil
		}
		return domain.Response[domain.Product]{}, err
	}

	return domain.OK(*product), nil
}

// Featured returns in-stock products, promoted items first, each group
// ordered by ascending effective price.
func (s *ProductService) Featured(ctx context.Context, limit int) (domain.Response[[]domain.Product], error) {
	if err := s.injector.Inject(ctx, s.profile, "Erro ao carregar produtos em destaque."); err != nil {
		return domain.Response[[]domain.Product]{}, err
	}

	products, err := s.products.All(ctx)
	if err != nil {
		return domain.Response[[]domain.Product]{}, err
	}

	featured := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.InStock {
			featured = append(featured, p)
		}
	}

	sort.SliceStable(featured, func(i, j int) bool {
		a, b := &featured[i], &featured[j]
		if (a.PromotionalPrice != nil) != (b.PromotionalPrice != nil) {
			return a.PromotionalPrice != nil
		}
		return a.EffectivePrice().LessThan(b.EffectivePrice())
	})

	if limit < 1 {
		limit = defaultFeaturedLimit
	}
	if len(featured) > limit {
		featured = featured[:limit]
	}

	return domain.OK(featured), nil
}

// Related returns in-stock products sharing the source product's brand or
// category, same-brand matches first, then by closeness of effective price.
func (s *ProductService) Related(ctx context.Context, productID string, limit int) (domain.Response[[]domain.Product], error) {
	if err := s.injector.Inject(ctx, s.profile, "Erro ao carregar produtos relacionados."); err != nil {
		return domain.Response[[]domain.Product]{}, err
	}

	current, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if err == catalog.ErrProductNotFound {
			return domain.Fail[[]domain.Product]("Produto não encontrado"), nil
		}
		return domain.Response[[]domain.Product]{}, err
	}

	products, err := s.products.All(ctx)
	if err != nil {
		return domain.Response[[]domain.Product]{}, err
	}

	related := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.ID == current.ID || !p.InStock {
			continue
		}
		if p.Brand == current.Brand || p.Category == current.Category {
			related = append(related, p)
		}
	}

	currentPrice := current.EffectivePrice()
	sort.SliceStable(related, func(i, j int) bool {
		a, b := &related[i], &related[j]
		aSameBrand := a.Brand == current.Brand
		bSameBrand := b.Brand == current.Brand
		if aSameBrand != bSameBrand {
			return aSameBrand
		}
		aDiff := a.EffectivePrice().Sub(currentPrice).Abs()
		bDiff := b.EffectivePrice().Sub(currentPrice).Abs()
		return aDiff.LessThan(bDiff)
	})

	if limit < 1 {
		limit = defaultRelatedLimit
	}
	if len(related) > limit {
		related = related[:limit]
	}

	return domain.OK(related), nil
}

// Search matches the query against model, brand, description and category,
// case-insensitively. A blank query short-circuits to an empty successful
// result without touching the catalog.
func (s *ProductService) Search(ctx context.Context, query string, limit int) (domain.Response[[]domain.Product], error) {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return domain.OK([]domain.Product{}), nil
	}

	if err := s.injector.Inject(ctx, s.profile, "Erro ao buscar produtos. Tente novamente."); err != nil {
		return domain.Response[[]domain.Product]{}, err
	}

	products, err := s.products.All(ctx)
	if err != nil {
		return domain.Response[[]domain.Product]{}, err
	}

	results := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Model), term) ||
			strings.Contains(strings.ToLower(p.Brand), term) ||
			strings.Contains(strings.ToLower(p.Description), term) ||
			strings.Contains(strings.ToLower(p.Category), term) {
			results = append(results, p)
		}
	}

	// Model matches outrank brand matches; ties keep catalog order.
	sort.SliceStable(results, func(i, j int) bool {
		a, b := &results[i], &results[j]
		aModel := strings.Contains(strings.ToLower(a.Model), term)
		bModel := strings.Contains(strings.ToLower(b.Model), term)
		if aModel != bModel {
			return aModel
		}
		aBrand := strings.Contains(strings.ToLower(a.Brand), term)
		bBrand := strings.Contains(strings.ToLower(b.Brand), term)
		if aBrand != bBrand {
			return aBrand
		}
		return false
	})

	if limit < 1 {
		limit = defaultSearchLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}

	return domain.OK(results), nil
}

// ByCategory lists products of one category slug.
func (s *ProductService) ByCategory(ctx context.Context, categorySlug string, page, limit int) (domain.Paginated[domain.Product], error) {
	return s.List(ctx, domain.ProductFilters{Category: categorySlug}, page, limit)
}

// ByBrand lists products of one brand.
func (s *ProductService) ByBrand(ctx context.Context, brand string, page, limit int) (domain.Paginated[domain.Product], error) {
	return s.List(ctx, domain.ProductFilters{Brand: brand}, page, limit)
}

func filterProducts(products []domain.Product, filters domain.ProductFilters) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	search := strings.ToLower(strings.TrimSpace(filters.Search))

	for _, p := range products {
		if filters.Category != "" && p.Category != filters.Category {
			continue
		}
		if filters.Brand != "" && !strings.Contains(strings.ToLower(p.Brand), strings.ToLower(filters.Brand)) {
			continue
		}
		if filters.MinPrice != nil && p.EffectivePrice().LessThan(*filters.MinPrice) {
			continue
		}
		if filters.MaxPrice != nil && p.EffectivePrice().GreaterThan(*filters.MaxPrice) {
			continue
		}
		if filters.InStock != nil && p.InStock != *filters.InStock {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Model), search) &&
			!strings.Contains(strings.ToLower(p.Brand), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}
