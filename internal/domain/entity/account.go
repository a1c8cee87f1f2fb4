package entity

import "time"

// Roles válidos para Account.
const (
	RoleVendor     = "VENDOR"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// ValidRole informa si el rol pertenece al conjunto cerrado de roles.
func ValidRole(role string) bool {
	switch role {
	case RoleVendor, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Account representa una cuenta del portal (vendor, admin o super admin).
// ApprovedAt/ApprovedByID se setean y se limpian siempre juntos: un vendor
// con ApprovedAt nulo está pendiente de aprobación y no puede iniciar sesión.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // VENDOR, ADMIN, SUPER_ADMIN

	ApprovedAt   *time.Time
	ApprovedByID *string

	// FeatureFlags solo tiene significado cuando Role es ADMIN.
	FeatureFlags *FeatureFlags

	// Perfil de vendor.
	CompanyName string
	PhoneNumber string
	Address     string
	Website     string
	TaxID       string

	// Perfil de admin.
	Designation string

	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsApproved informa si la cuenta puede autenticarse. ADMIN y SUPER_ADMIN
// nacen aprobados; para VENDOR depende de ApprovedAt.
func (a *Account) IsApproved() bool {
	if a.Role != RoleVendor {
		return true
	}
	return a.ApprovedAt != nil
}
