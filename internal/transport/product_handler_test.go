package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"otica-store/internal/catalog"
	"otica-store/internal/domain"
	"otica-store/internal/fault"
	"otica-store/internal/service"
)

func newProductRouter() chi.Router {
	repo := catalog.NewMemoryProductRepository(catalog.SeedProducts())
	products := service.NewProductService(repo, fault.NewInjectorSeeded(1), fault.None, zap.NewNop())
	handler := NewProductHandler(products, zap.NewNop())

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func doGet(t *testing.T, router chi.Router, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetProductEndpoint(t *testing.T) {
	router := newProductRouter()

	rec := doGet(t, router, "/api/products/1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp domain.Response[domain.Product]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Data.Model != "Aviator Classic" {
		t.Errorf("unexpected body %+v", resp)
	}
}

func TestGetMissingProductEndpoint(t *testing.T) {
	router := newProductRouter()

	rec := doGet(t, router, "/api/products/999")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var resp domain.Response[domain.Product]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Success || resp.Error != "Produto não encontrado" {
		t.Errorf("unexpected body %+v", resp)
	}
}

func TestListProductsEndpointPaginates(t *testing.T) {
	router := newProductRouter()

	rec := doGet(t, router, "/api/products?page=1&limit=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp domain.Paginated[domain.Product]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 2 || resp.Pagination.Total != 5 || resp.Pagination.TotalPages != 3 {
		t.Errorf("unexpected pagination %+v", resp.Pagination)
	}
}

func TestListProductsRejectsBadPriceParam(t *testing.T) {
	router := newProductRouter()

	rec := doGet(t, router, "/api/products?minPrice=abc")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp domain.Response[any]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Success || resp.Error != "Parâmetro inválido: minPrice" {
		t.Errorf("unexpected body %+v", resp)
	}
}

func TestFeaturedEndpoint(t *testing.T) {
	router := newProductRouter()

	rec := doGet(t, router, "/api/products/featured?limit=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp domain.Response[[]domain.Product]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 3 {
		t.Fatalf("expected 3 products, got %d", len(resp.Data))
	}
	for _, p := range resp.Data {
		if !p.InStock {
			t.Errorf("featured must be in stock, got %s", p.ID)
		}
	}
}

func TestSearchEndpointBlankQuery(t *testing.T) {
	router := newProductRouter()

	rec := doGet(t, router, "/api/products/search?q=")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp domain.Response[[]domain.Product]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || len(resp.Data) != 0 {
		t.Errorf("a blank query is an empty success, got %+v", resp)
	}
}

func TestTransportFailureEndpointBehavior(t *testing.T) {
	repo := catalog.NewMemoryProductRepository(catalog.SeedProducts())
	products := service.NewProductService(repo, fault.NewInjectorSeeded(1), fault.Profile{FailureRate: 1}, zap.NewNop())
	handler := NewProductHandler(products, zap.NewNop())

	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	rec := doGet(t, router, "/api/products/1")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "1" {
		t.Error("transport failures are retryable and must say so")
	}

	var resp domain.Response[any]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Success {
		t.Error("expected a failure envelope")
	}
}
