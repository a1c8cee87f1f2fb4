// Package ports define contratos hacia servicios externos que la capa de
// aplicación consume sin conocer su implementación.
package ports

import (
	"context"

	"github.com/vendorhub/portal-api/internal/domain/entity"
)

// Notifier puerto de notificaciones por email. Todas las llamadas son
// best-effort: un fallo se loguea y jamás revierte ni hace fallar la
// operación que lo disparó.
type Notifier interface {
	// VendorApproved avisa al vendor que su cuenta fue aprobada.
	VendorApproved(ctx context.Context, a *entity.Account) error
	// VendorRejected avisa al vendor que su aprobación fue revocada o rechazada.
	VendorRejected(ctx context.Context, a *entity.Account, reason string) error
	// NewVendorSignup alerta al administrador de un registro nuevo pendiente.
	NewVendorSignup(ctx context.Context, a *entity.Account) error
	// PasswordReset envía el link de reseteo de password.
	PasswordReset(ctx context.Context, a *entity.Account, resetLink string) error
}
