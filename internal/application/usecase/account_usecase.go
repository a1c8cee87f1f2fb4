package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vendorhub/portal-api/internal/application/dto"
	"github.com/vendorhub/portal-api/internal/domain"
	"github.com/vendorhub/portal-api/internal/domain/entity"
	"github.com/vendorhub/portal-api/internal/domain/policy"
	"github.com/vendorhub/portal-api/internal/domain/repository"
)

// AccountUseCase CRUD de cuentas. Toda autorización pasa por la Role Policy:
// los handlers no repiten chequeos de rol por su cuenta.
type AccountUseCase struct {
	accounts repository.AccountRepository
}

// NewAccountUseCase construye el caso de uso de cuentas.
func NewAccountUseCase(accounts repository.AccountRepository) *AccountUseCase {
	return &AccountUseCase{accounts: accounts}
}

// List lista cuentas con filtros de rol y estado de aprobación (SUPER_ADMIN).
func (uc *AccountUseCase) List(ctx context.Context, actor policy.Actor, q dto.ListAccountsQuery) ([]*dto.AccountResponse, error) {
	if !policy.CanPerform(actor, policy.ActionListAccounts, nil) {
		return nil, domain.ErrForbidden
	}
	q.DefaultPage()
	f := repository.ListFilter{Limit: q.Limit, Offset: q.Offset}
	if q.Role != "" && q.Role != "all" {
		if !entity.ValidRole(q.Role) {
			return nil, domain.ErrInvalidInput
		}
		f.Role = q.Role
	}
	switch q.Status {
	case "", "all":
	case repository.ApprovalPending:
		// Solo los vendors transitan por aprobación.
		f.Role = entity.RoleVendor
		f.Approval = repository.ApprovalPending
	case repository.ApprovalApproved:
		f.Approval = repository.ApprovalApproved
	default:
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.accounts.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.ToAccountResponses(list), nil
}

// Get devuelve una cuenta por ID (SUPER_ADMIN).
func (uc *AccountUseCase) Get(ctx context.Context, actor policy.Actor, id string) (*dto.AccountResponse, error) {
	if !policy.CanPerform(actor, policy.ActionViewAccount, nil) {
		return nil, domain.ErrForbidden
	}
	acc, err := uc.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, domain.ErrAccountNotFound
	}
	return dto.ToAccountResponse(acc), nil
}

// Me devuelve la proyección de la propia cuenta del actor.
func (uc *AccountUseCase) Me(ctx context.Context, actor policy.Actor) (*dto.AccountResponse, error) {
	acc, err := uc.accounts.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, domain.ErrAccountNotFound
	}
	return dto.ToAccountResponse(acc), nil
}

// Create crea una cuenta de cualquier rol (SUPER_ADMIN). Vendors nacen
// pendientes salvo AutoApprove; ADMIN y SUPER_ADMIN nacen aprobados
// implícitamente y nunca pasan por la máquina de aprobación.
func (uc *AccountUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	if !policy.CanPerform(actor, policy.ActionCreateAccount, nil) {
		return nil, domain.ErrForbidden
	}
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
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
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	switch in.Role {
	case entity.RoleVendor:
		acc.CompanyName = in.CompanyName
		acc.PhoneNumber = in.PhoneNumber
		acc.Address = in.Address
		acc.Website = in.Website
		acc.TaxID = in.TaxID
		if in.AutoApprove {
			approverID := actor.ID
			acc.ApprovedAt = &now
			acc.ApprovedByID = &approverID
		}
	default:
		acc.Designation = in.Designation
		if in.Role == entity.RoleAdmin && in.FeatureFlags != nil {
			flags := entity.Merge(entity.DefaultFeatureFlags(), *in.FeatureFlags)
			acc.FeatureFlags = &flags
		}
		approverID := actor.ID
		acc.ApprovedAt = &now
		acc.ApprovedByID = &approverID
	}
	if err := uc.accounts.Create(ctx, acc); err != nil {
		return nil, err
	}
	return dto.ToAccountResponse(acc), nil
}

// Update actualiza una cuenta. El dueño solo puede tocar campos de
// autoservicio; si el pedido incluye algún campo restringido y el actor no es
// SUPER_ADMIN, se rechaza completo con Forbidden (nunca se aplica a medias).
func (uc *AccountUseCase) Update(ctx context.Context, actor policy.Actor, id string, in dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	acc, err := uc.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, domain.ErrAccountNotFound
	}
	if !policy.CanPerform(actor, policy.ActionUpdateProfile, acc) {
		return nil, domain.ErrForbidden
	}
	if in.TouchesRestricted() && !policy.CanSetRestrictedFields(actor) {
		return nil, domain.ErrForbidden
	}

	// Autoservicio.
	if in.Name != nil {
		acc.Name = *in.Name
	}
	if in.CompanyName != nil {
		acc.CompanyName = *in.CompanyName
	}
	if in.PhoneNumber != nil {
		acc.PhoneNumber = *in.PhoneNumber
	}
	if in.Address != nil {
		acc.Address = *in.Address
	}
	if in.Website != nil {
		acc.Website = *in.Website
	}
	if in.TaxID != nil {
		acc.TaxID = *in.TaxID
	}

	// Restringidos (llega acá solo SUPER_ADMIN).
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email != acc.Email {
			other, err := uc.accounts.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrEmailAlreadyExists
			}
			acc.Email = email
		}
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		acc.PasswordHash = string(hash)
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		acc.Role = *in.Role
	}
	if in.Designation != nil {
		acc.Designation = *in.Designation
	}
	if in.FeatureFlags != nil {
		if acc.Role != entity.RoleAdmin {
			return nil, domain.ErrNotAnAdmin
		}
		flags := entity.Merge(entity.EffectiveFlags(acc), *in.FeatureFlags)
		acc.FeatureFlags = &flags
	}

	acc.UpdatedAt = time.Now()
	if err := uc.accounts.Update(ctx, acc); err != nil {
		return nil, err
	}
	return dto.ToAccountResponse(acc), nil
}

// Delete elimina una cuenta (SUPER_ADMIN, nunca la propia).
func (uc *AccountUseCase) Delete(ctx context.Context, actor policy.Actor, id string) error {
	acc, err := uc.accounts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if acc == nil {
		return domain.ErrAccountNotFound
	}
	if acc.ID == actor.ID {
		// Prohibido para cualquier rol, incluido SUPER_ADMIN.
		return domain.ErrSelfAction
	}
	if !policy.CanPerform(actor, policy.ActionDeleteAccount, acc) {
		return domain.ErrForbidden
	}
	return uc.accounts.Delete(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
