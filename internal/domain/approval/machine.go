// Package approval implementa la máquina de estados del ciclo de vida de un
// vendor: Pending (approved_at nulo) y Approved (approved_at seteado). La
// revocación no es un tercer estado terminal sino la vuelta a Pending con
// approved_at y approved_by_id limpiados juntos.
package approval

import (
	"time"

	"github.com/vendorhub/portal-api/internal/domain"
	"github.com/vendorhub/portal-api/internal/domain/entity"
)

// State estado observable de aprobación de una cuenta.
type State string

const (
	StatePending  State = "pending"
	StateApproved State = "approved"
)

// StateOf estado de aprobación de la cuenta. ADMIN y SUPER_ADMIN nacen
// aprobados y nunca transitan por esta máquina.
func StateOf(a *entity.Account) State {
	if a.IsApproved() {
		return StateApproved
	}
	return StatePending
}

// Approve transición Pending → Approved sobre la cuenta en memoria. Quién
// puede invocarla lo decide la Role Policy, no esta máquina.
func Approve(target *entity.Account, approverID string, now time.Time) error {
	if target.Role != entity.RoleVendor {
		return domain.ErrNotAVendor
	}
	if target.ApprovedAt != nil {
		return domain.ErrAlreadyApproved
	}
	target.ApprovedAt = &now
	target.ApprovedByID = &approverID
	return nil
}

// Revoke transición Approved → Pending: limpia approved_at y approved_by_id
// juntos. Revocar una cuenta ya pendiente es un no-op válido.
func Revoke(target *entity.Account) error {
	if target.Role != entity.RoleVendor {
		return domain.ErrNotAVendor
	}
	target.ApprovedAt = nil
	target.ApprovedByID = nil
	return nil
}
