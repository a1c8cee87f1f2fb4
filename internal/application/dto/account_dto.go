package dto

import (
	"time"

	"github.com/vendorhub/portal-api/internal/domain/entity"
)

// CreateAccountRequest creación de cuentas por SUPER_ADMIN (cualquier rol).
// AutoApprove solo aplica a vendors; los demás roles nacen aprobados.
type CreateAccountRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=100"`
	Role     string `json:"role" validate:"required,oneof=VENDOR ADMIN SUPER_ADMIN"`

	// Perfil de vendor.
	CompanyName string `json:"company_name" validate:"omitempty,max=200"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
	Address     string `json:"address" validate:"omitempty,max=500"`
	Website     string `json:"website" validate:"omitempty,max=200"`
	TaxID       string `json:"tax_id" validate:"omitempty,max=50"`
	AutoApprove bool   `json:"auto_approve"`

	// Perfil de admin.
	Designation  string                    `json:"designation" validate:"omitempty,max=100"`
	FeatureFlags *entity.FeatureFlagsPatch `json:"feature_flags"`
}

// UpdateAccountRequest actualización parcial: campos nil no se tocan.
// Los campos de la segunda mitad son restringidos: solo SUPER_ADMIN puede
// enviarlos; si un dueño los incluye en su autoservicio, el pedido completo
// se rechaza con Forbidden (nunca aplicación parcial).
type UpdateAccountRequest struct {
	// Autoservicio (dueño o SUPER_ADMIN).
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	CompanyName *string `json:"company_name" validate:"omitempty,max=200"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
	Website     *string `json:"website" validate:"omitempty,max=200"`
	TaxID       *string `json:"tax_id" validate:"omitempty,max=50"`

	// Restringidos (solo SUPER_ADMIN).
	Email        *string                   `json:"email" validate:"omitempty,email"`
	Password     *string                   `json:"password" validate:"omitempty,min=8,max=100"`
	Role         *string                   `json:"role" validate:"omitempty,oneof=VENDOR ADMIN SUPER_ADMIN"`
	Designation  *string                   `json:"designation" validate:"omitempty,max=100"`
	FeatureFlags *entity.FeatureFlagsPatch `json:"feature_flags"`
}

// TouchesRestricted informa si el pedido incluye algún campo restringido.
func (r UpdateAccountRequest) TouchesRestricted() bool {
	return r.Email != nil || r.Password != nil || r.Role != nil ||
		r.Designation != nil || r.FeatureFlags != nil
}

// ListAccountsQuery filtros de listado.
type ListAccountsQuery struct {
	Role   string `query:"role"`   // all | VENDOR | ADMIN | SUPER_ADMIN
	Status string `query:"status"` // all | pending | approved
	PageRequest
}

// AccountResponse salida de una cuenta (sin password hash).
type AccountResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Role         string               `json:"role"`
	ApprovedAt   *time.Time           `json:"approved_at"`
	ApprovedByID *string              `json:"approved_by_id"`
	FeatureFlags *entity.FeatureFlags `json:"feature_flags,omitempty"`
	CompanyName  string               `json:"company_name,omitempty"`
	PhoneNumber  string               `json:"phone_number,omitempty"`
	Address      string               `json:"address,omitempty"`
	Website      string               `json:"website,omitempty"`
	TaxID        string               `json:"tax_id,omitempty"`
	Designation  string               `json:"designation,omitempty"`
	LastLoginAt  *time.Time           `json:"last_login_at"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// ToAccountResponse proyección de la entidad sin el hash de password.
func ToAccountResponse(a *entity.Account) *AccountResponse {
	if a == nil {
		return nil
	}
	return &AccountResponse{
		ID:           a.ID,
		Name:         a.Name,
		Email:        a.Email,
		Role:         a.Role,
		ApprovedAt:   a.ApprovedAt,
		ApprovedByID: a.ApprovedByID,
		FeatureFlags: a.FeatureFlags,
		CompanyName:  a.CompanyName,
		PhoneNumber:  a.PhoneNumber,
		Address:      a.Address,
		Website:      a.Website,
		TaxID:        a.TaxID,
		Designation:  a.Designation,
		LastLoginAt:  a.LastLoginAt,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// ToAccountResponses proyección de una lista de cuentas.
func ToAccountResponses(list []*entity.Account) []*AccountResponse {
	out := make([]*AccountResponse, 0, len(list))
	for _, a := range list {
		out = append(out, ToAccountResponse(a))
	}
	return out
}
