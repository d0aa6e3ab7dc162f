package domain

import "time"

// User represents a customer account. Email is unique, compared
// case-insensitively.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Avatar    string    `json:"avatar,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserUpdate carries the profile fields a user may change. Nil fields are
// left untouched; the ID and account flags are never client-writable.
type UserUpdate struct {
	Name   *string `json:"name,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// AuthResponse is the payload of a successful login or registration.
type AuthResponse struct {
	User         User   `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

// TokenRefresh is the payload of a successful token refresh.
type TokenRefresh struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

// RefreshToken is a server-tracked long-lived credential that can mint new
// access tokens until it expires or is revoked.
type RefreshToken struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
	Revoked   bool      `json:"revoked"`
}
