package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"otica-store/internal/cart"
	"otica-store/internal/catalog"
	"otica-store/internal/domain"
	"otica-store/internal/middleware"
)

// CartHandler exposes the per-user shopping cart. All routes require a valid
// access token; the owner is taken from the request context. Cart mutations
// are local state changes, so no simulated transport runs here.
type CartHandler struct {
	carts    *cart.Manager
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewCartHandler creates a CartHandler.
func NewCartHandler(carts *cart.Manager, products catalog.ProductRepository, logger *zap.Logger) *CartHandler {
	return &CartHandler{carts: carts, products: products, logger: logger}
}

// RegisterRoutes registers all cart routes on the given router, which must
// already carry the auth middleware.
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Delete("/", h.Clear)
		r.Post("/items", h.AddItem)
		r.Put("/items/{id}", h.UpdateQuantity)
		r.Delete("/items/{id}", h.RemoveItem)
	})
}

func (h *CartHandler) ownerCart(w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	owner, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondError(w, http.StatusUnauthorized, "Token inválido")
		return nil, false
	}

	c, err := h.carts.Cart(r.Context(), owner)
	if err != nil {
		h.logger.Error("failed to load cart", zap.Error(err), zap.String("user_id", owner))
		middleware.RespondError(w, http.StatusInternalServerError, "Erro ao carregar o carrinho.")
		return nil, false
	}
	return c, true
}

// Get responds with the cart snapshot: lines plus aggregates.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := h.ownerCart(w, r)
	if !ok {
		return
	}
	middleware.RespondJSON(w, http.StatusOK, domain.OK(c.Snapshot()))
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// AddItem snapshots the catalog product into the cart, merging into an
// existing line when the product is already there.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondError(w, http.StatusBadRequest, "Dados inválidos")
		return
	}

	product, err := h.products.FindByID(r.Context(), req.ProductID)
	if err != nil {
		if err == catalog.ErrProductNotFound {
			middleware.RespondError(w, http.StatusNotFound, "Produto não encontrado")
			return
		}
		respondFailure(w, h.logger, err)
		return
	}

	c, ok := h.ownerCart(w, r)
	if !ok {
		return
	}
	if err := c.AddItem(r.Context(), cart.ItemFromProduct(product)); err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	middleware.RespondJSON(w, http.StatusOK, domain.OKMessage(c.Snapshot(), "Produto adicionado ao carrinho!"))
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity sets a line's quantity to an absolute value. Zero or
// negative removes the line.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondError(w, http.StatusBadRequest, "Dados inválidos")
		return
	}

	c, ok := h.ownerCart(w, r)
	if !ok {
		return
	}
	if err := c.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), req.Quantity); err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	middleware.RespondJSON(w, http.StatusOK, domain.OK(c.Snapshot()))
}

// RemoveItem deletes a line. Removing an absent product is a no-op.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, ok := h.ownerCart(w, r)
	if !ok {
		return
	}
	if err := c.RemoveItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	middleware.RespondJSON(w, http.StatusOK, domain.OK(c.Snapshot()))
}

// Clear empties the cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	c, ok := h.ownerCart(w, r)
	if !ok {
		return
	}
	if err := c.Clear(r.Context()); err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	middleware.RespondJSON(w, http.StatusOK, domain.OKMessage(c.Snapshot(), "Carrinho esvaziado."))
}
