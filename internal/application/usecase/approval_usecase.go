package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vendorhub/portal-api/internal/application/dto"
	"github.com/vendorhub/portal-api/internal/application/ports"
	"github.com/vendorhub/portal-api/internal/domain"
	"github.com/vendorhub/portal-api/internal/domain/approval"
	"github.com/vendorhub/portal-api/internal/domain/entity"
	"github.com/vendorhub/portal-api/internal/domain/policy"
	"github.com/vendorhub/portal-api/internal/domain/repository"
)

// ApprovalUseCase ciclo de vida de aprobación de vendors: quién puede
// aprobar/revocar lo decide la Role Policy, la transición en sí la máquina de
// estados, y la escritura approved_at/approved_by_id es un único UPDATE
// atómico en el repositorio.
type ApprovalUseCase struct {
	accounts repository.AccountRepository
	notifier ports.Notifier
}

// NewApprovalUseCase construye el caso de uso de aprobación.
func NewApprovalUseCase(accounts repository.AccountRepository, notifier ports.Notifier) *ApprovalUseCase {
	return &ApprovalUseCase{accounts: accounts, notifier: notifier}
}

// ListVendors lista vendors con filtro de estado (SUPER_ADMIN o ADMIN con
// manageVendors).
func (uc *ApprovalUseCase) ListVendors(ctx context.Context, actor policy.Actor, status string, page dto.PageRequest) ([]*dto.AccountResponse, error) {
	if !policy.CanPerform(actor, policy.ActionListVendors, nil) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	f := repository.ListFilter{Role: entity.RoleVendor, Limit: page.Limit, Offset: page.Offset}
	switch status {
	case "", "all":
	case repository.ApprovalPending, repository.ApprovalApproved:
		f.Approval = status
	default:
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.accounts.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.ToAccountResponses(list), nil
}

// Approve transición Pending → Approved de un vendor. La notificación al
// vendor es best-effort: su fallo se loguea y no revierte la transición.
func (uc *ApprovalUseCase) Approve(ctx context.Context, actor policy.Actor, id string) (*dto.AccountResponse, error) {
	acc, err := uc.loadVendorTarget(ctx, actor, policy.ActionApproveVendor, id)
	if err != nil {
		return nil, err
	}
	if err := approval.Approve(acc, actor.ID, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.accounts.UpdateApproval(ctx, acc.ID, acc.ApprovedAt, acc.ApprovedByID); err != nil {
		return nil, err
	}

	uc.notifyAsync(acc.ID, "email de aprobación", func(ctx context.Context) error {
		return uc.notifier.VendorApproved(ctx, acc)
	})

	return dto.ToAccountResponse(acc), nil
}

// Revoke transición Approved → Pending: limpia approved_at y approved_by_id
// en una sola escritura.
func (uc *ApprovalUseCase) Revoke(ctx context.Context, actor policy.Actor, id string, reason string) (*dto.AccountResponse, error) {
	acc, err := uc.loadVendorTarget(ctx, actor, policy.ActionRevokeVendor, id)
	if err != nil {
		return nil, err
	}
	if err := approval.Revoke(acc); err != nil {
		return nil, err
	}
	if err := uc.accounts.UpdateApproval(ctx, acc.ID, nil, nil); err != nil {
		return nil, err
	}

	if strings.TrimSpace(reason) == "" {
		reason = "Tu aprobación de vendor fue revocada por un administrador."
	}
	uc.notifyAsync(acc.ID, "email de revocación", func(ctx context.Context) error {
		return uc.notifier.VendorRejected(ctx, acc, reason)
	})

	return dto.ToAccountResponse(acc), nil
}

func (uc *ApprovalUseCase) loadVendorTarget(ctx context.Context, actor policy.Actor, action policy.Action, id string) (*entity.Account, error) {
	if !policy.CanPerform(actor, action, nil) {
		return nil, domain.ErrForbidden
	}
	acc, err := uc.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, domain.ErrAccountNotFound
	}
	return acc, nil
}

func (uc *ApprovalUseCase) notifyAsync(accountID, what string, fn func(context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := fn(ctx); err != nil {
			log.Warn().Err(err).Str("account_id", accountID).Msgf("fallo al enviar %s", what)
		}
	}()
}
