package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vendorhub/portal-api/internal/application/auth"
	"github.com/vendorhub/portal-api/internal/application/dto"
	"github.com/vendorhub/portal-api/internal/domain"
	"github.com/vendorhub/portal-api/internal/domain/entity"
	"github.com/vendorhub/portal-api/internal/mocks"
	"github.com/vendorhub/portal-api/pkg/jwt"
)

const testSecret = "secreto-de-test"

var testJWTCfg = auth.JWTConfig{
	Secret:         testSecret,
	SessionMinutes: 60,
	ResetMinutes:   15,
	Issuer:         "portal-test",
}

func newAuthUC(t *testing.T) (*auth.AuthUseCase, *mocks.FakeAccountRepo, *mocks.FakeNotifier) {
	t.Helper()
	repo := mocks.NewFakeAccountRepo()
	notifier := mocks.NewFakeNotifier()
	return auth.NewAuthUseCase(repo, notifier, testJWTCfg, "https://portal.example.com"), repo, notifier
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func approvedVendor(t *testing.T) *entity.Account {
	now := time.Now()
	byID := "sa-1"
	return &entity.Account{
		ID:           "v-1",
		Name:         "Vendor Uno",
		Email:        "vendor@example.com",
		PasswordHash: hashOf(t, "password123"),
		Role:         entity.RoleVendor,
		ApprovedAt:   &now,
		ApprovedByID: &byID,
	}
}

func TestLogin_VendorAprobado(t *testing.T) {
	uc, repo, _ := newAuthUC(t)
	repo.Seed(approvedVendor(t))

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "vendor@example.com", Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "v-1", out.Account.ID)

	ident, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendor, ident.Role)
	assert.Nil(t, ident.FeatureFlags, "solo ADMIN lleva snapshot de flags en el token")
}

func TestLogin_EmailNormalizado(t *testing.T) {
	uc, repo, _ := newAuthUC(t)
	repo.Seed(approvedVendor(t))

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "  VENDOR@Example.COM ", Password: "password123",
	})
	assert.NoError(t, err)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, repo, _ := newAuthUC(t)
	repo.Seed(approvedVendor(t))

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "vendor@example.com", Password: "incorrecta",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_VendorPendienteBloqueado(t *testing.T) {
	uc, repo, _ := newAuthUC(t)
	v := approvedVendor(t)
	v.ApprovedAt = nil
	v.ApprovedByID = nil
	repo.Seed(v)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "vendor@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrPendingApproval)
}

// Las credenciales se verifican ANTES que el gate de aprobación: con password
// incorrecto una cuenta pendiente responde igual que una inexistente.
func TestLogin_PendienteConPasswordMalNoSeFiltra(t *testing.T) {
	uc, repo, _ := newAuthUC(t)
	v := approvedVendor(t)
	v.ApprovedAt = nil
	v.ApprovedByID = nil
	repo.Seed(v)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "vendor@example.com", Password: "incorrecta",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials,
		"no debe revelar que la cuenta existe y está pendiente")
}

// El gate de aprobación solo aplica a vendors.
func TestLogin_AdminSinApprovedAtEntra(t *testing.T) {
	uc, repo, _ := newAuthUC(t)
	repo.Seed(&entity.Account{
		ID:           "a-1",
		Email:        "admin@example.com",
		PasswordHash: hashOf(t, "password123"),
		Role:         entity.RoleAdmin,
		FeatureFlags: &entity.FeatureFlags{ManageVendors: true},
	})

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "admin@example.com", Password: "password123",
	})
	require.NoError(t, err)

	ident, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.True(t, ident.FeatureFlags["manageVendors"])
	assert.False(t, ident.FeatureFlags["manageProducts"])
}

func TestLogin_ActualizaLastLogin(t *testing.T) {
	uc, repo, _ := newAuthUC(t)
	repo.Seed(approvedVendor(t))

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "vendor@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.NotNil(t, out.Account.LastLoginAt)

	stored, err := repo.GetByID(context.Background(), "v-1")
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestRegisterVendor_NacePendienteYAlerta(t *testing.T) {
	uc, repo, notifier := newAuthUC(t)

	out, err := uc.RegisterVendor(context.Background(), dto.RegisterVendorRequest{
		Name:        "Nuevo Vendor",
		Email:       "Nuevo@Example.com",
		Password:    "password123",
		CompanyName: "Nueva SA",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendor, out.Role)
	assert.Equal(t, "nuevo@example.com", out.Email)
	assert.Nil(t, out.ApprovedAt, "el registro público nace pendiente")

	stored, err := repo.GetByEmail(context.Background(), "nuevo@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "password123", stored.PasswordHash)

	assert.Eventually(t, func() bool {
		calls := notifier.Calls()
		return len(calls) == 1 && calls[0] == "signup:nuevo@example.com"
	}, time.Second, 10*time.Millisecond, "debe alertar al administrador")
}

func TestRegisterVendor_EmailDuplicado(t *testing.T) {
	uc, repo, _ := newAuthUC(t)
	repo.Seed(approvedVendor(t))

	_, err := uc.RegisterVendor(context.Background(), dto.RegisterVendorRequest{
		Name: "Clon", Email: "vendor@example.com", Password: "password123", CompanyName: "Clon SA",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRequestPasswordReset_EnviaLink(t *testing.T) {
	uc, repo, notifier := newAuthUC(t)
	repo.Seed(approvedVendor(t))

	require.NoError(t, uc.RequestPasswordReset(context.Background(), "vendor@example.com"))

	assert.Eventually(t, func() bool {
		calls := notifier.Calls()
		return len(calls) == 1 && calls[0] == "reset:vendor@example.com"
	}, time.Second, 10*time.Millisecond)
}

// El endpoint nunca confirma ni niega la existencia de cuentas.
func TestRequestPasswordReset_EmailDesconocidoSilencioso(t *testing.T) {
	uc, _, notifier := newAuthUC(t)

	assert.NoError(t, uc.RequestPasswordReset(context.Background(), "nadie@example.com"))

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, notifier.Calls())
}

func TestResetPassword_CicloCompleto(t *testing.T) {
	uc, repo, _ := newAuthUC(t)
	repo.Seed(approvedVendor(t))

	token, err := jwt.GenerateResetToken(testSecret, "v-1", "vendor@example.com", testJWTCfg.Issuer, 15)
	require.NoError(t, err)

	require.NoError(t, uc.ResetPassword(context.Background(), dto.ResetPasswordInput{
		Token: token, NewPassword: "nueva-password-1",
	}))

	// La password nueva entra, la vieja ya no.
	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "vendor@example.com", Password: "nueva-password-1",
	})
	assert.NoError(t, err)
	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "vendor@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// Un token de sesión no sirve para resetear password aunque la firma valga.
func TestResetPassword_RechazaTokenDeSesion(t *testing.T) {
	uc, repo, _ := newAuthUC(t)
	repo.Seed(approvedVendor(t))

	sessionToken, err := jwt.Generate(testSecret, jwt.Identity{
		UserID: "v-1", Email: "vendor@example.com", Role: entity.RoleVendor,
	}, testJWTCfg.Issuer, 60)
	require.NoError(t, err)

	err = uc.ResetPassword(context.Background(), dto.ResetPasswordInput{
		Token: sessionToken, NewPassword: "nueva-password-1",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResetPassword_TokenInvalido(t *testing.T) {
	uc, _, _ := newAuthUC(t)

	err := uc.ResetPassword(context.Background(), dto.ResetPasswordInput{
		Token: "basura", NewPassword: "nueva-password-1",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
