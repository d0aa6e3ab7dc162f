package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"otica-store/internal/catalog"
	"otica-store/internal/domain"
	"otica-store/internal/fault"
	"otica-store/internal/validation"
)

// RefreshTokenExpiration bounds how long a refresh token can mint new access
// tokens.
const RefreshTokenExpiration = 7 * 24 * time.Hour

// Claims are the access-token JWT claims.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// RegisterData is the registration input.
type RegisterData struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// AuthService exposes the authentication facade. Credential checks are
// deliberately shallow: the mock accepts any password of valid length for an
// existing account, exactly as a demo backend would.
type AuthService struct {
	users         catalog.UserRepository
	refreshTokens catalog.RefreshTokenRepository
	jwtSecret     string
	expiresIn     int // access token lifetime in seconds
	injector      *fault.Injector
	profile       fault.Profile
	logger        *zap.Logger
	now           func() time.Time
}

// NewAuthService creates an AuthService. expiresIn is the access-token
// lifetime in seconds as reported to clients.
func NewAuthService(
	users catalog.UserRepository,
	refreshTokens catalog.RefreshTokenRepository,
	jwtSecret string,
	expiresIn int,
	injector *fault.Injector,
	profile fault.Profile,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:         users,
		refreshTokens: refreshTokens,
		jwtSecret:     jwtSecret,
		expiresIn:     expiresIn,
		injector:      injector,
		profile:       profile,
		logger:        logger,
		now:           time.Now,
	}
}

// Login authenticates by email. Checks run in fixed order: presence, email
// format, account lookup, active flag, password length.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Response[domain.AuthResponse], error) {
	if err := s.injector.Inject(ctx, s.profile, "Erro de conexão. Verifique sua internet e tente novamente."); err != nil {
		return domain.Response[domain.AuthResponse]{}, err
	}

	if email == "" || password == "" {
		return domain.Fail[domain.AuthResponse]("Email e senha são obrigatórios"), nil
	}
	if !validation.ValidEmail(email) {
		return domain.Fail[domain.AuthResponse]("Formato de email inválido"), nil
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == catalog.ErrUserNotFound {
			return domain.Fail[domain.AuthResponse]("Email não encontrado"), nil
		}
		return domain.Response[domain.AuthResponse]{}, err
	}
	if !user.IsActive {
		return domain.Fail[domain.AuthResponse]("Conta desativada. Entre em contato com o suporte."), nil
	}
	if !validation.ValidPassword(password) {
		return domain.Fail[domain.AuthResponse]("Senha deve ter pelo menos 6 caracteres"), nil
	}

	auth, err := s.issueSession(ctx, user)
	if err != nil {
		return domain.Response[domain.AuthResponse]{}, err
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID))
	return domain.OKMessage(auth, "Login realizado com sucesso!"), nil
}

// Register creates an account. Validation precedence: presence, password
// confirmation, password length, email format, phone format, uniqueness.
// The new user is written through the repository seam, so a later login in
// the same process finds it.
func (s *AuthService) Register(ctx context.Context, data RegisterData) (domain.Response[domain.AuthResponse], error) {
	if err := s.injector.Inject(ctx, s.profile, "Erro no servidor. Tente novamente mais tarde."); err != nil {
		return domain.Response[domain.AuthResponse]{}, err
	}

	if data.Name == "" || data.Email == "" || data.Phone == "" || data.Password == "" || data.ConfirmPassword == "" {
		return domain.Fail[domain.AuthResponse]("Todos os campos são obrigatórios"), nil
	}
	if data.Password != data.ConfirmPassword {
		return domain.Fail[domain.AuthResponse]("Senhas não coincidem"), nil
	}
	if !validation.ValidPassword(data.Password) {
		return domain.Fail[domain.AuthResponse]("Senha deve ter pelo menos 6 caracteres"), nil
	}
	if !validation.ValidEmail(data.Email) {
		return domain.Fail[domain.AuthResponse]("Formato de email inválido"), nil
	}
	if !validation.ValidPhone(data.Phone) {
		return domain.Fail[domain.AuthResponse]("Formato de telefone inválido. Use: (XX) XXXXX-XXXX"), nil
	}

	// Check-then-create: two concurrent registrations for the same email can
	// both pass this lookup; the repository's own uniqueness check decides
	// the loser.
	if _, err := s.users.FindByEmail(ctx, data.Email); err == nil {
		return domain.Fail[domain.AuthResponse]("Este email já está cadastrado"), nil
	} else if err != catalog.ErrUserNotFound {
		return domain.Response[domain.AuthResponse]{}, err
	}

	now := s.now()
	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(data.Name),
		Email:     strings.ToLower(strings.TrimSpace(data.Email)),
		Phone:     strings.TrimSpace(data.Phone),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if err == catalog.ErrUserAlreadyExists {
			return domain.Fail[domain.AuthResponse]("Este email já está cadastrado"), nil
		}
		return domain.Response[domain.AuthResponse]{}, err
	}

	auth, err := s.issueSession(ctx, user)
	if err != nil {
		return domain.Response[domain.AuthResponse]{}, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return domain.OKMessage(auth, "Conta criada com sucesso!"), nil
}

// Profile returns the account behind an access token.
func (s *AuthService) Profile(ctx context.Context, token string) (domain.Response[domain.User], error) {
	if err := s.injector.Inject(ctx, s.profile, "Erro ao carregar perfil do usuário."); err != nil {
		return domain.Response[domain.User]{}, err
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		return domain.Fail[domain.User]("Token inválido"), nil
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if err == catalog.ErrUserNotFound {
			return domain.Fail[domain.User]("Usuário não encontrado"), nil
		}
		return domain.Response[domain.User]{}, err
	}
	if !user.IsActive {
		return domain.Fail[domain.User]("Conta desativada"), nil
	}

	return domain.OK(*user), nil
}

// UpdateProfile merges the given updates into the account behind the token
// and returns the updated snapshot. The ID is never changed.
func (s *AuthService) UpdateProfile(ctx context.Context, token string, update domain.UserUpdate) (domain.Response[domain.User], error) {
	if err := s.injector.Inject(ctx, s.profile, "Erro ao atualizar perfil."); err != nil {
		return domain.Response[domain.User]{}, err
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		return domain.Fail[domain.User]("Token inválido"), nil
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if err == catalog.ErrUserNotFound {
			return domain.Fail[domain.User]("Usuário não encontrado"), nil
		}
		return domain.Response[domain.User]{}, err
	}

	if update.Name != nil {
		user.Name = strings.TrimSpace(*update.Name)
	}
	if update.Phone != nil {
		user.Phone = strings.TrimSpace(*update.Phone)
	}
	if update.Avatar != nil {
		user.Avatar = *update.Avatar
	}
	user.UpdatedAt = s.now()

	if err := s.users.Update(ctx, user); err != nil {
		return domain.Response[domain.User]{}, err
	}

	return domain.OKMessage(*user, "Perfil atualizado com sucesso!"), nil
}

// Refresh exchanges a refresh token for a new access token. A revoked,
// unknown or expired token reads as a terminal session failure.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.Response[domain.TokenRefresh], error) {
	if err := s.injector.Inject(ctx, s.profile, "Erro de conexão. Verifique sua internet e tente novamente."); err != nil {
		return domain.Response[domain.TokenRefresh]{}, err
	}

	if refreshToken == "" {
		return domain.Fail[domain.TokenRefresh]("Refresh token inválido"), nil
	}

	stored, err := s.refreshTokens.FindByToken(ctx, refreshToken)
	if err != nil {
		if err == catalog.ErrRefreshTokenNotFound || err == catalog.ErrRefreshTokenRevoked {
			return domain.Fail[domain.TokenRefresh]("Refresh token inválido"), nil
		}
		return domain.Response[domain.TokenRefresh]{}, err
	}
	if s.now().After(stored.ExpiresAt) {
		return domain.Fail[domain.TokenRefresh]("Sessão expirada. Faça login novamente."), nil
	}

	user, err := s.users.FindByID(ctx, stored.UserID)
	if err != nil || !user.IsActive {
		return domain.Fail[domain.TokenRefresh]("Sessão expirada. Faça login novamente."), nil
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return domain.Response[domain.TokenRefresh]{}, err
	}

	return domain.OK(domain.TokenRefresh{Token: token, ExpiresIn: s.expiresIn}), nil
}

// Logout revokes the refresh token. An unknown token counts as already
// logged out.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) (domain.Response[domain.StatusMessage], error) {
	if err := s.injector.Inject(ctx, s.profile, "Erro ao encerrar a sessão."); err != nil {
		return domain.Response[domain.StatusMessage]{}, err
	}

	if refreshToken != "" {
		if err := s.refreshTokens.Revoke(ctx, refreshToken); err != nil && err != catalog.ErrRefreshTokenNotFound {
			return domain.Response[domain.StatusMessage]{}, err
		}
	}

	return domain.OK(domain.StatusMessage{Message: "Logout realizado com sucesso"}), nil
}

// RequestPasswordReset always answers with the same non-revealing message,
// whether or not the email is on file.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (domain.Response[domain.StatusMessage], error) {
	if err := s.injector.Inject(ctx, s.profile, "Erro ao enviar email de recuperação."); err != nil {
		return domain.Response[domain.StatusMessage]{}, err
	}

	if email == "" {
		return domain.Fail[domain.StatusMessage]("Email é obrigatório"), nil
	}
	if !validation.ValidEmail(email) {
		return domain.Fail[domain.StatusMessage]("Formato de email inválido"), nil
	}

	return domain.OK(domain.StatusMessage{
		Message: "Se o email estiver cadastrado, você receberá instruções para redefinir sua senha.",
	}), nil
}

// ValidateToken parses an access token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) issueSession(ctx context.Context, user *domain.User) (domain.AuthResponse, error) {
	token, err := s.generateAccessToken(user)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	refresh := &domain.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(RefreshTokenExpiration),
		CreatedAt: s.now(),
	}
	if err := s.refreshTokens.Create(ctx, refresh); err != nil {
		return domain.AuthResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return domain.AuthResponse{
		User:         *user,
		Token:        token,
		RefreshToken: refresh.Token,
		ExpiresIn:    s.expiresIn,
	}, nil
}

func (s *AuthService) generateAccessToken(user *domain.User) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.expiresIn) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}
