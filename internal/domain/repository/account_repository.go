package repository

import (
	"context"
	"time"

	"github.com/vendorhub/portal-api/internal/domain/entity"
)

// ListFilter filtros para listado de cuentas. Approval solo tiene sentido
// combinado con rol VENDOR (los demás roles nacen aprobados).
type ListFilter struct {
	Role     string // "" = todos; VENDOR, ADMIN, SUPER_ADMIN
	Approval string // "" = todos; "pending", "approved"
	Limit    int
	Offset   int
}

// Estados de aprobación aceptados en ListFilter.Approval.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
)

// AccountRepository define el puerto de persistencia para Account (DIP).
// Los updates parciales (aprobación, flags, último login, password) deben
// aplicarse como una sola escritura atómica sobre la fila.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	Update(ctx context.Context, a *entity.Account) error
	// UpdateApproval escribe approved_at y approved_by_id juntos en un solo
	// UPDATE: nunca debe observarse un estado a medio aprobar.
	UpdateApproval(ctx context.Context, id string, approvedAt *time.Time, approvedByID *string) error
	UpdateFeatureFlags(ctx context.Context, id string, flags entity.FeatureFlags) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	UpdatePasswordHash(ctx context.Context, id string, hash string) error
	List(ctx context.Context, f ListFilter) ([]*entity.Account, error)
	Delete(ctx context.Context, id string) error
}
