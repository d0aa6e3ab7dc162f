package auth

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"go.uber.org/zap"

	"otica-store/internal/catalog"
	"otica-store/internal/domain"
	"otica-store/internal/fault"
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

type sessionFixture struct {
	api     *service.AuthService
	tokens  catalog.RefreshTokenRepository
	storage *mockStore
	session *Session
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	users := catalog.NewMemoryUserRepository(catalog.SeedUsers())
	tokens := catalog.NewMemoryRefreshTokenRepository()
	api := service.NewAuthService(users, tokens, "test-secret", 3600, fault.NewInjectorSeeded(1), fault.None, zap.NewNop())

	st := newMockStore()
	session, err := NewSession(context.Background(), api, st, DefaultNamespace, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return &sessionFixture{api: api, tokens: tokens, storage: st, session: session}
}

func TestSessionStartsAnonymous(t *testing.T) {
	f := newSessionFixture(t)

	if f.session.IsAuthenticated() || f.session.User() != nil || f.session.Token() != "" {
		t.Error("a fresh session with no persisted state is anonymous")
	}
	if f.session.IsLoading() {
		t.Error("no operation is in flight")
	}
}

func TestLoginInstallsSession(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t)

	if !f.session.Login(ctx, "maria@exemplo.com", "123456") {
		t.Fatal("login should succeed")
	}

	if !f.session.IsAuthenticated() {
		t.Error("session must be authenticated after login")
	}
	if user := f.session.User(); user == nil || user.Email != "maria@exemplo.com" {
		t.Errorf("unexpected user %+v", user)
	}
	if f.session.Token() == "" || f.session.RefreshToken() == "" {
		t.Error("session must hold both tokens")
	}
	if f.session.IsLoading() {
		t.Error("loading flag resets after the operation")
	}
}

func TestFailedLoginLeavesSessionUntouched(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t)

	if !f.session.Login(ctx, "maria@exemplo.com", "123456") {
		t.Fatal("login should succeed")
	}
	token := f.session.Token()

	if f.session.Login(ctx, "maria@exemplo.com", "123") {
		t.Fatal("a short password must be rejected")
	}

	if !f.session.IsAuthenticated() || f.session.Token() != token {
		t.Error("a failed login must not disturb the existing session")
	}
	if f.session.IsLoading() {
		t.Error("loading flag resets after a failure too")
	}
}

func TestSessionSurvivesReload(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t)

	if !f.session.Login(ctx, "maria@exemplo.com", "123456") {
		t.Fatal("login should succeed")
	}

	reloaded, err := NewSession(ctx, f.api, f.storage, DefaultNamespace, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	if !reloaded.IsAuthenticated() {
		t.Error("the authenticated flag must survive a reload")
	}
	if user := reloaded.User(); user == nil || user.ID != f.session.User().ID {
		t.Error("the user snapshot must survive a reload")
	}
	if reloaded.Token() != f.session.Token() || reloaded.RefreshToken() != f.session.RefreshToken() {
		t.Error("both tokens must survive a reload")
	}
	if reloaded.IsLoading() {
		t.Error("the loading flag is transient and never persisted")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t)

	if !f.session.Login(ctx, "maria@exemplo.com", "123456") {
		t.Fatal("login should succeed")
	}
	refreshToken := f.session.RefreshToken()

	f.session.Logout(ctx)

	if f.session.IsAuthenticated() || f.session.User() != nil || f.session.Token() != "" || f.session.RefreshToken() != "" {
		t.Error("logout clears the whole session")
	}

	// The refresh token is dead server-side too.
	resp, err := f.api.Refresh(ctx, refreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if resp.Success {
		t.Error("the refresh token must be revoked on logout")
	}

	// And the cleared state is what a reload sees.
	reloaded, err := NewSession(ctx, f.api, f.storage, DefaultNamespace, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if reloaded.IsAuthenticated() {
		t.Error("the persisted state must be cleared as well")
	}
}

func TestRefreshAuthReplacesAccessToken(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t)

	if !f.session.Login(ctx, "maria@exemplo.com", "123456") {
		t.Fatal("login should succeed")
	}

	if !f.session.RefreshAuth(ctx) {
		t.Fatal("refresh should succeed")
	}
	if !f.session.IsAuthenticated() {
		t.Error("a successful refresh keeps the session authenticated")
	}
	if f.session.Token() == "" {
		t.Error("refresh must install a new access token")
	}
}

func TestRefreshAuthWithoutTokenIsNoOp(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t)

	if f.session.RefreshAuth(ctx) {
		t.Error("an anonymous session has nothing to refresh")
	}
	if f.session.IsAuthenticated() {
		t.Error("the no-op must not change the session")
	}
}

func TestRefreshFailureCascadesToLogout(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t)

	if !f.session.Login(ctx, "maria@exemplo.com", "123456") {
		t.Fatal("login should succeed")
	}

	// Kill the refresh token behind the session's back.
	if err := f.tokens.Revoke(ctx, f.session.RefreshToken()); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	if f.session.RefreshAuth(ctx) {
		t.Fatal("refresh with a revoked token must fail")
	}
	if f.session.IsAuthenticated() || f.session.User() != nil || f.session.Token() != "" {
		t.Error("a rejected refresh is terminal and logs the session out")
	}
}

func TestUpdateProfileRequiresAuthentication(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t)

	name := "Novo Nome"
	if f.session.UpdateProfile(ctx, userUpdate(&name)) {
		t.Error("an anonymous session cannot update a profile")
	}

	if !f.session.Login(ctx, "maria@exemplo.com", "123456") {
		t.Fatal("login should succeed")
	}
	if !f.session.UpdateProfile(ctx, userUpdate(&name)) {
		t.Fatal("update should succeed")
	}
	if user := f.session.User(); user == nil || user.Name != name {
		t.Errorf("the local snapshot must carry the update, got %+v", user)
	}
}

func userUpdate(name *string) domain.UserUpdate {
	return domain.UserUpdate{Name: name}
}
