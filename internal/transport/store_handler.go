package transport

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"otica-store/internal/middleware"
	"otica-store/internal/service"
)

// StoreHandler handles HTTP requests for shop units.
type StoreHandler struct {
	stores *service.StoreService
	logger *zap.Logger
}

// NewStoreHandler creates a StoreHandler.
func NewStoreHandler(stores *service.StoreService, logger *zap.Logger) *StoreHandler {
	return &StoreHandler{stores: stores, logger: logger}
}

// RegisterRoutes registers all store routes.
func (h *StoreHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/stores", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/nearest", h.Nearest)
		r.Get("/{id}", h.Get)
		r.Get("/{id}/hours", h.Hours)
	})
}

// List responds with all active stores, optionally narrowed by city or
// neighborhood.
func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if city := q.Get("city"); city != "" {
		resp, err := h.stores.ByCity(r.Context(), city)
		if err != nil {
			respondFailure(w, h.logger, err)
			return
		}
		respondResult(w, resp, http.StatusBadRequest)
		return
	}

	if neighborhood := q.Get("neighborhood"); neighborhood != "" {
		resp, err := h.stores.ByNeighborhood(r.Context(), neighborhood)
		if err != nil {
			respondFailure(w, h.logger, err)
			return
		}
		respondResult(w, resp, http.StatusBadRequest)
		return
	}

	resp, err := h.stores.List(r.Context())
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusBadRequest)
}

// Get responds with one store.
func (h *StoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.stores.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusNotFound)
}

// Nearest responds with active stores around a lat/lng point.
func (h *StoreHandler) Nearest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(q.Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		middleware.RespondError(w, http.StatusBadRequest, "Parâmetros lat e lng são obrigatórios")
		return
	}

	radius := 0.0
	if raw := q.Get("radius"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			middleware.RespondError(w, http.StatusBadRequest, errInvalidParam("radius").Error())
			return
		}
		radius = parsed
	}

	resp, err := h.stores.Nearest(r.Context(), lat, lng, radius)
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusBadRequest)
}

// Hours responds with a store's opening hours and open-now flag.
func (h *StoreHandler) Hours(w http.ResponseWriter, r *http.Request) {
	resp, err := h.stores.Hours(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusNotFound)
}
