package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"otica-store/internal/cart"
	"otica-store/internal/catalog"
	"otica-store/internal/domain"
	"otica-store/internal/fault"
	"otica-store/internal/middleware"
	"otica-store/internal/service"
	"otica-store/internal/storage"
)

// In-memory storage for testing
type mockStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string][]byte)}
}

func (m *mockStore) Load(ctx context.Context, namespace string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[namespace]
	if !ok {
		return storage.ErrNotFound
	}
	return json.Unmarshal(raw, v)
}

func (m *mockStore) Save(ctx context.Context, namespace string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[namespace] = raw
	return nil
}

func (m *mockStore) Delete(ctx context.Context, namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, namespace)
	return nil
}

const testJWTSecret = "test-secret"

func newCartFixture(t *testing.T) (chi.Router, string) {
	t.Helper()

	users := catalog.NewMemoryUserRepository(catalog.SeedUsers())
	tokens := catalog.NewMemoryRefreshTokenRepository()
	auth := service.NewAuthService(users, tokens, testJWTSecret, 3600, fault.NewInjectorSeeded(1), fault.None, zap.NewNop())

	login, err := auth.Login(context.Background(), "maria@exemplo.com", "123456")
	if err != nil || !login.Success {
		t.Fatalf("Login: %v / %+v", err, login)
	}

	productRepo := catalog.NewMemoryProductRepository(catalog.SeedProducts())
	manager := cart.NewManager(newMockStore(), zap.NewNop())
	handler := NewCartHandler(manager, productRepo, zap.NewNop())

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(middleware.Auth(testJWTSecret, zap.NewNop()))
		handler.RegisterRoutes(r)
	})
	return router, login.Data.Token
}

func doCartRequest(t *testing.T, router chi.Router, method, url, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) domain.Response[cart.State] {
	t.Helper()
	var resp domain.Response[cart.State]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestCartRequiresToken(t *testing.T) {
	router, _ := newCartFixture(t)

	rec := doCartRequest(t, router, http.MethodGet, "/api/cart", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCartAddUpdateRemoveFlow(t *testing.T) {
	router, token := newCartFixture(t)

	// Add the same product twice; the line merges.
	for i := 0; i < 2; i++ {
		rec := doCartRequest(t, router, http.MethodPost, "/api/cart/items", token, map[string]string{"productId": "1"})
		if rec.Code != http.StatusOK {
			t.Fatalf("add: expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec := doCartRequest(t, router, http.MethodGet, "/api/cart", token, nil)
	state := decodeCart(t, rec).Data
	if len(state.Items) != 1 || state.Items[0].Quantity != 2 || state.TotalItems != 2 {
		t.Fatalf("unexpected state after merge: %+v", state)
	}

	// Absolute quantity set.
	rec = doCartRequest(t, router, http.MethodPut, "/api/cart/items/1", token, map[string]int{"quantity": 5})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", rec.Code)
	}
	if state := decodeCart(t, rec).Data; state.TotalItems != 5 {
		t.Fatalf("expected totalItems 5, got %d", state.TotalItems)
	}

	// Quantity zero removes the line.
	rec = doCartRequest(t, router, http.MethodPut, "/api/cart/items/1", token, map[string]int{"quantity": 0})
	if state := decodeCart(t, rec).Data; len(state.Items) != 0 {
		t.Fatalf("quantity 0 must remove the line, got %+v", state)
	}
}

func TestCartAddUnknownProduct(t *testing.T) {
	router, token := newCartFixture(t)

	rec := doCartRequest(t, router, http.MethodPost, "/api/cart/items", token, map[string]string{"productId": "999"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCartClear(t *testing.T) {
	router, token := newCartFixture(t)

	doCartRequest(t, router, http.MethodPost, "/api/cart/items", token, map[string]string{"productId": "1"})
	doCartRequest(t, router, http.MethodPost, "/api/cart/items", token, map[string]string{"productId": "2"})

	rec := doCartRequest(t, router, http.MethodDelete, "/api/cart", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	state := decodeCart(t, rec).Data
	if len(state.Items) != 0 || state.TotalItems != 0 || !state.Subtotal.IsZero() {
		t.Fatalf("clear must empty the cart, got %+v", state)
	}
}
