package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"otica-store/internal/service"
)

// CategoryHandler handles HTTP requests for product categories.
type CategoryHandler struct {
	categories *service.CategoryService
	logger     *zap.Logger
}

// NewCategoryHandler creates a CategoryHandler.
func NewCategoryHandler(categories *service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, logger: logger}
}

// RegisterRoutes registers all category routes.
func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/popular", h.Popular)
		r.Get("/search", h.Search)
		r.Get("/with-products", h.WithProducts)
		r.Get("/slug/{slug}", h.BySlug)
		r.Get("/{id}", h.Get)
	})
}

// List responds with all active categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.categories.List(r.Context())
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusBadRequest)
}

// Get responds with one category.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.categories.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusNotFound)
}

// BySlug responds with the active category matching a slug.
func (h *CategoryHandler) BySlug(w http.ResponseWriter, r *http.Request) {
	resp, err := h.categories.BySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusNotFound)
}

// WithProducts responds with active categories that have at least one product.
func (h *CategoryHandler) WithProducts(w http.ResponseWriter, r *http.Request) {
	resp, err := h.categories.WithProducts(r.Context())
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusBadRequest)
}

// Popular responds with the most populated active categories.
func (h *CategoryHandler) Popular(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 0)
	resp, err := h.categories.Popular(r.Context(), limit)
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusBadRequest)
}

// Search responds with active categories matching a name query.
func (h *CategoryHandler) Search(w http.ResponseWriter, r *http.Request) {
	resp, err := h.categories.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusBadRequest)
}
