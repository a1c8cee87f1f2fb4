package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/vendorhub/portal-api/internal/application/dto"
	"github.com/vendorhub/portal-api/internal/application/ports"
	"github.com/vendorhub/portal-api/internal/domain"
	"github.com/vendorhub/portal-api/internal/domain/entity"
	"github.com/vendorhub/portal-api/internal/domain/repository"
	"github.com/vendorhub/portal-api/pkg/jwt"
)

// JWTConfig configuración para emisión de tokens.
type JWTConfig struct {
	Secret         string
	SessionMinutes int
	ResetMinutes   int
	Issuer         string
}

// AuthUseCase casos de uso de autenticación: login, registro de vendors y
// reseteo de password.
type AuthUseCase struct {
	accounts repository.AccountRepository
	notifier ports.Notifier
	jwtCfg   JWTConfig
	baseURL  string
}

// NewAuthUseCase construye el caso de uso de auth. baseURL es la URL pública
// del portal, usada para armar links de reseteo.
func NewAuthUseCase(accounts repository.AccountRepository, notifier ports.Notifier, jwtCfg JWTConfig, baseURL string) *AuthUseCase {
	return &AuthUseCase{accounts: accounts, notifier: notifier, jwtCfg: jwtCfg, baseURL: baseURL}
}

// Login verifica email/password y emite el JWT de sesión.
//
// El orden de los chequeos es parte del contrato: primero credenciales
// (comparación bcrypt, tiempo constante), recién después el gate de
// aprobación de vendors. Un probe sin password correcto nunca distingue una
// cuenta pendiente de una inexistente.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	acc, err := uc.accounts.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if acc.Role == entity.RoleVendor && acc.ApprovedAt == nil {
		return nil, domain.ErrPendingApproval
	}

	now := time.Now()
	if err := uc.accounts.UpdateLastLogin(ctx, acc.ID, now); err != nil {
		// Efecto secundario, no bloquea el login.
		log.Warn().Err(err).Str("account_id", acc.ID).Msg("no se pudo actualizar last_login_at")
	} else {
		acc.LastLoginAt = &now
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, identityOf(acc), uc.jwtCfg.Issuer, uc.jwtCfg.SessionMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Account: *dto.ToAccountResponse(acc),
	}, nil
}

// RegisterVendor registro público: crea un vendor pendiente de aprobación y
// alerta al administrador (best-effort).
func (uc *AuthUseCase) RegisterVendor(ctx context.Context, in dto.RegisterVendorRequest) (*dto.AccountResponse, error) {
	email := normalizeEmail(in.Email)
	existing, err := uc.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	acc := &entity.Account{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleVendor,
		CompanyName:  in.CompanyName,
		PhoneNumber:  in.PhoneNumber,
		Address:      in.Address,
		Website:      in.Website,
		TaxID:        in.TaxID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.accounts.Create(ctx, acc); err != nil {
		return nil, err
	}

	notifyAsync(acc.ID, "alerta de registro de vendor", func(ctx context.Context) error {
		return uc.notifier.NewVendorSignup(ctx, acc)
	})

	return dto.ToAccountResponse(acc), nil
}

// RequestPasswordReset emite un token de reseteo de corta vida y manda el
// link por email. Si el email no existe, retorna nil igual: el endpoint nunca
// confirma ni niega la existencia de cuentas.
func (uc *AuthUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	acc, err := uc.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if acc == nil {
		return nil
	}
	token, err := jwt.GenerateResetToken(uc.jwtCfg.Secret, acc.ID, acc.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ResetMinutes)
	if err != nil {
		return err
	}
	link := uc.baseURL + "/reset-password?token=" + token

	notifyAsync(acc.ID, "email de reseteo de password", func(ctx context.Context) error {
		return uc.notifier.PasswordReset(ctx, acc, link)
	})
	return nil
}

// ResetPassword completa el reseteo validando el token del link.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordInput) error {
	userID, _, err := jwt.ParseResetToken(uc.jwtCfg.Secret, in.Token)
	if err != nil {
		return domain.ErrUnauthorized
	}
	acc, err := uc.accounts.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if acc == nil {
		return domain.ErrAccountNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.accounts.UpdatePasswordHash(ctx, acc.ID, string(hash))
}

// identityOf arma la proyección que viaja en el token. El snapshot de flags
// solo se incluye para ADMIN (flags efectivos: almacenados o defaults).
func identityOf(a *entity.Account) jwt.Identity {
	ident := jwt.Identity{
		UserID: a.ID,
		Email:  a.Email,
		Name:   a.Name,
		Role:   a.Role,
	}
	if a.Role == entity.RoleAdmin {
		ident.FeatureFlags = entity.EffectiveFlags(a).ToMap()
	}
	return ident
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// notifyAsync dispara una notificación fire-and-forget con timeout propio.
// El fallo se loguea y nunca se propaga a la operación principal.
func notifyAsync(accountID, what string, fn func(context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := fn(ctx); err != nil {
			log.Warn().Err(err).Str("account_id", accountID).Msgf("fallo al enviar %s", what)
		}
	}()
}
