package usecase

import (
	"context"
	"strings"

	"github.com/vendorhub/portal-api/internal/application/dto"
	"github.com/vendorhub/portal-api/internal/domain"
	"github.com/vendorhub/portal-api/internal/domain/entity"
	"github.com/vendorhub/portal-api/internal/domain/policy"
	"github.com/vendorhub/portal-api/internal/domain/repository"
)

// FlagsUseCase vista de política de los feature flags de administradores.
// El conjunto de capacidades es cerrado; claves desconocidas se rechazan en
// la frontera HTTP antes de llegar acá.
type FlagsUseCase struct {
	accounts repository.AccountRepository
}

// NewFlagsUseCase construye el caso de uso de feature flags.
func NewFlagsUseCase(accounts repository.AccountRepository) *FlagsUseCase {
	return &FlagsUseCase{accounts: accounts}
}

// Get flags efectivos de un admin: los almacenados, o todos en false si nunca
// se asignaron (SUPER_ADMIN).
func (uc *FlagsUseCase) Get(ctx context.Context, actor policy.Actor, id string) (*dto.FeatureFlagsResponse, error) {
	acc, err := uc.loadAdminTarget(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return &dto.FeatureFlagsResponse{
		UserID:       acc.ID,
		UserName:     acc.Name,
		FeatureFlags: entity.EffectiveFlags(acc),
	}, nil
}

// Update merge parcial clave por clave sobre los flags efectivos, persistido
// como una sola escritura atómica (SUPER_ADMIN).
func (uc *FlagsUseCase) Update(ctx context.Context, actor policy.Actor, id string, patch entity.FeatureFlagsPatch) (*dto.FeatureFlagsResponse, error) {
	acc, err := uc.loadAdminTarget(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	merged := entity.Merge(entity.EffectiveFlags(acc), patch)
	if err := uc.accounts.UpdateFeatureFlags(ctx, acc.ID, merged); err != nil {
		return nil, err
	}
	return &dto.FeatureFlagsResponse{
		UserID:       acc.ID,
		UserName:     acc.Name,
		FeatureFlags: merged,
	}, nil
}

func (uc *FlagsUseCase) loadAdminTarget(ctx context.Context, actor policy.Actor, id string) (*entity.Account, error) {
	if !policy.CanPerform(actor, policy.ActionManageFlags, nil) {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidInput
	}
	acc, err := uc.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, domain.ErrAccountNotFound
	}
	if acc.Role != entity.RoleAdmin {
		return nil, domain.ErrNotAnAdmin
	}
	return acc, nil
}
