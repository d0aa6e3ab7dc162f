package catalog

import (
	"context"
	"errors"
	"sync"

	"otica-store/internal/domain"
)

var (
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenRevoked  = errors.New("refresh token has been revoked")
)

// RefreshTokenRepository tracks issued refresh tokens so they can be revoked
// on logout.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
}

type memoryRefreshTokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]*domain.RefreshToken
}

// NewMemoryRefreshTokenRepository creates an empty RefreshTokenRepository.
func NewMemoryRefreshTokenRepository() RefreshTokenRepository {
	return &memoryRefreshTokenRepository{tokens: make(map[string]*domain.RefreshToken)}
}

func (r *memoryRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *token
	r.tokens[token.Token] = &stored
	return nil
}

func (r *memoryRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.tokens[token]
	if !ok {
		return nil, ErrRefreshTokenNotFound
	}
	if stored.Revoked {
		return nil, ErrRefreshTokenRevoked
	}
	out := *stored
	return &out, nil
}

func (r *memoryRefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tokens[token]
	if !ok {
		return ErrRefreshTokenNotFound
	}
	stored.Revoked = true
	return nil
}
