package transport

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"otica-store/internal/domain"
	"otica-store/internal/middleware"
	"otica-store/internal/service"
)

// AuthHandler handles HTTP requests for the session lifecycle. Decoding and
// length guards happen here; the message-level validation order lives in the
// service, which is what clients observe.
type AuthHandler struct {
	auth   *service.AuthService
	logger *zap.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// RegisterRoutes registers all auth routes on the given router, which is
// expected to carry the auth-family rate limiter.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/register", h.Register)
		r.Post("/refresh", h.Refresh)
		r.Post("/logout", h.Logout)
		r.Post("/password-reset", h.RequestPasswordReset)
		r.Get("/profile", h.Profile)
		r.Put("/profile", h.UpdateProfile)
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an account and responds with a fresh session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondError(w, http.StatusBadRequest, "Dados inválidos")
		return
	}

	resp, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusUnauthorized)
}

// Register creates an account and responds with a fresh session.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterData
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondError(w, http.StatusBadRequest, "Dados inválidos")
		return
	}

	resp, err := h.auth.Register(r.Context(), req)
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusBadRequest)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh exchanges a refresh token for a new access token.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondError(w, http.StatusBadRequest, "Dados inválidos")
		return
	}

	resp, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusUnauthorized)
}

// Logout revokes the refresh token. A missing or empty body still logs out.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	// The body is optional here, so decode errors fall through to an empty
	// token.
	_ = middleware.DecodeAndValidate(r, &req)

	resp, err := h.auth.Logout(r.Context(), req.RefreshToken)
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusBadRequest)
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

// RequestPasswordReset triggers the recovery flow without revealing whether
// the email exists.
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req passwordResetRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondError(w, http.StatusBadRequest, "Dados inválidos")
		return
	}

	resp, err := h.auth.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusBadRequest)
}

// Profile responds with the account behind the bearer token.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	resp, err := h.auth.Profile(r.Context(), bearerToken(r))
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusUnauthorized)
}

type updateProfileRequest struct {
	Name   *string `json:"name" validate:"omitempty,max=120"`
	Phone  *string `json:"phone" validate:"omitempty,brphone"`
	Avatar *string `json:"avatar" validate:"omitempty,max=500"`
}

// UpdateProfile merges the given fields into the authenticated account.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if fieldErrors := middleware.FormatValidationErrors(err); len(fieldErrors) > 0 {
			middleware.RespondValidationErrors(w, fieldErrors)
			return
		}
		middleware.RespondError(w, http.StatusBadRequest, "Dados inválidos")
		return
	}

	update := domain.UserUpdate{Name: req.Name, Phone: req.Phone, Avatar: req.Avatar}
	resp, err := h.auth.UpdateProfile(r.Context(), bearerToken(r), update)
	if err != nil {
		respondFailure(w, h.logger, err)
		return
	}
	respondResult(w, resp, http.StatusUnauthorized)
}

// bearerToken extracts the raw token from an Authorization header, or returns
// an empty string when the header is absent or malformed.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
