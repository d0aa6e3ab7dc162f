package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"

	"otica-store/internal/domain"
)

var (
	ErrUserNotFound      = errors.New("usuário não encontrado")
	ErrUserAlreadyExists = errors.New("este email já está cadastrado")
)

// UserRepository defines access to the user list. Registration writes through
// this interface, so the backing store is a seam rather than a shared global.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type memoryUserRepository struct {
	mu    sync.RWMutex
	users []domain.User
}

// NewMemoryUserRepository creates a UserRepository over the given seed.
func NewMemoryUserRepository(seed []domain.User) UserRepository {
	users := make([]domain.User, len(seed))
	copy(users, seed)
	return &memoryUserRepository{users: users}
}

// Create appends a new user. Emails are unique case-insensitively; the check
// and the write happen under one lock here, but callers that check first and
// create later still race with each other on the same email.
func (r *memoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrUserAlreadyExists
		}
	}
	r.users = append(r.users, *user)
	return nil
}

// FindByEmail retrieves a user by email, compared case-insensitively.
func (r *memoryUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			user := u
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// Update replaces the stored user matching the given ID.
func (r *memoryUserRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == user.ID {
			r.users[i] = *user
			return nil
		}
	}
	return ErrUserNotFound
}
