package transport

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"otica-store/internal/domain"
	"otica-store/internal/middleware"
	"otica-store/internal/service"
)

// ProductHandler handles HTTP requests for catalog products.
type ProductHandler struct {
	products *service.ProductService
	logger   *zap.Logger
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(products *service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// RegisterRoutes registers all product routes.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/featured", h.Featured)
		r.Get("/search", h.Search)
		r.Get("/{id}", h.Get)
		r.Get("/{id}/related", h.Related)
	})
}

// List responds with a filtered, paginated product listing.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, err := parseProductFilters(r)
	if err != nil {
		middleware.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	resp, callErr := h.products.List(r.Context(), filters, page, limit)
	if callErr != nil {
		respondFailure(w, h.logger, callErr)
		return
	}
	middleware.RespondJSON(w, http.StatusOK, resp)
}

// Get responds with a single product.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusNotFound)
}

// Featured responds with the highlighted products.
func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	resp, err := h.products.Featured(r.Context(), queryInt(r, "limit", 0))
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusNotFound)
}

// Related responds with products related to the given one.
func (h *ProductHandler) Related(w http.ResponseWriter, r *http.Request) {
	resp, err := h.products.Related(r.Context(), chi.URLParam(r, "id"), queryInt(r, "limit", 0))
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusNotFound)
}

// Search responds with products matching the q query parameter.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	resp, err := h.products.Search(r.Context(), r.URL.Query().Get("q"), queryInt(r, "limit", 0))
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusBadRequest)
}

func parseProductFilters(r *http.Request) (domain.ProductFilters, error) {
	q := r.URL.Query()
	filters := domain.ProductFilters{
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
		Search:   q.Get("search"),
	}

	if raw := q.Get("minPrice"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return filters, errInvalidParam("minPrice")
		}
		filters.MinPrice = &d
	}
	if raw := q.Get("maxPrice"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return filters, errInvalidParam("maxPrice")
		}
		filters.MaxPrice = &d
	}
	if raw := q.Get("inStock"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return filters, errInvalidParam("inStock")
		}
		filters.InStock = &b
	}

	return filters, nil
}

type paramError string

func errInvalidParam(name string) paramError {
	return paramError("Parâmetro inválido: " + name)
}

func (e paramError) Error() string {
	return string(e)
}

// queryInt reads an integer query parameter, falling back on absence or
// garbage.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
