package policy

import (
	"strings"

	"github.com/vendorhub/portal-api/internal/domain/entity"
)

// Actor identidad mínima que toma decisiones: quién es, con qué rol y con qué
// snapshot de flags. Flags es nil salvo para ADMIN.
type Actor struct {
	ID    string
	Role  string
	Flags *entity.FeatureFlags
}

// Action acciones sobre cuentas que la política sabe autorizar.
type Action string

const (
	ActionListAccounts  Action = "accounts.list"
	ActionViewAccount   Action = "accounts.view"
	ActionCreateAccount Action = "accounts.create"
	ActionUpdateProfile Action = "accounts.update_profile"
	ActionDeleteAccount Action = "accounts.delete"
	ActionChangeRole    Action = "accounts.change_role"
	ActionManageFlags   Action = "accounts.manage_flags"
	ActionListVendors   Action = "vendors.list"
	ActionApproveVendor Action = "vendors.approve"
	ActionRevokeVendor  Action = "vendors.revoke"
)

// Prefijos de ruta con rol exacto requerido. El match es igualdad estricta de
// rol, no jerarquía: un SUPER_ADMIN no puede abrir /vendor/* (comportamiento
// heredado, ver DESIGN.md).
var roleRoutes = []struct {
	prefix string
	role   string
}{
	{"/vendor", entity.RoleVendor},
	{"/admin", entity.RoleAdmin},
	{"/superadmin", entity.RoleSuperAdmin},
}

// CanAccessRoute informa si un rol puede abrir una ruta con prefijo de rol.
// Rutas sin prefijo de rol están permitidas para cualquier rol.
func CanAccessRoute(role, path string) bool {
	for _, rr := range roleRoutes {
		if strings.HasPrefix(path, rr.prefix) {
			return role == rr.role
		}
	}
	return true
}

// DashboardPath dashboard propio según rol; rol desconocido vuelve a /signin.
func DashboardPath(role string) string {
	switch role {
	case entity.RoleVendor:
		return "/vendor/dashboard"
	case entity.RoleAdmin:
		return "/admin/dashboard"
	case entity.RoleSuperAdmin:
		return "/superadmin/dashboard"
	default:
		return "/signin"
	}
}

// CanManageVendors gate de gestión de vendors: SUPER_ADMIN siempre, ADMIN solo
// con la capacidad manageVendors activa. VENDOR nunca.
func CanManageVendors(actor Actor) bool {
	switch actor.Role {
	case entity.RoleSuperAdmin:
		return true
	case entity.RoleAdmin:
		return actor.Flags != nil && actor.Flags.ManageVendors
	}
	return false
}

// HasCapability informa si el actor tiene una capacidad del conjunto cerrado.
// SUPER_ADMIN tiene todas implícitamente; los flags solo se consultan para ADMIN.
func HasCapability(actor Actor, capability string) bool {
	if actor.Role == entity.RoleSuperAdmin {
		return true
	}
	if actor.Role != entity.RoleAdmin || actor.Flags == nil {
		return false
	}
	switch capability {
	case entity.FlagManageVendors:
		return actor.Flags.ManageVendors
	case entity.FlagManageProducts:
		return actor.Flags.ManageProducts
	case entity.FlagManageOrders:
		return actor.Flags.ManageOrders
	}
	return false
}

// CanPerform decide si el actor puede ejecutar la acción sobre la cuenta
// objetivo. Función pura: sin estado oculto ni I/O. target puede ser nil para
// acciones sin objetivo concreto (listados, creación).
func CanPerform(actor Actor, action Action, target *entity.Account) bool {
	switch action {
	case ActionListVendors, ActionApproveVendor, ActionRevokeVendor:
		return CanManageVendors(actor)

	case ActionListAccounts, ActionViewAccount, ActionCreateAccount,
		ActionChangeRole, ActionManageFlags:
		return actor.Role == entity.RoleSuperAdmin

	case ActionDeleteAccount:
		// Nadie se elimina a sí mismo, ni siquiera SUPER_ADMIN.
		if target != nil && target.ID == actor.ID {
			return false
		}
		return actor.Role == entity.RoleSuperAdmin

	case ActionUpdateProfile:
		// Autoservicio siempre permitido sobre la propia cuenta; SUPER_ADMIN
		// puede editar cualquiera. Los campos restringidos se filtran aparte
		// con CanSetRestrictedFields.
		if target != nil && target.ID == actor.ID {
			return true
		}
		return actor.Role == entity.RoleSuperAdmin
	}
	return false
}

// CanSetRestrictedFields solo SUPER_ADMIN puede tocar rol, flags, aprobación,
// designation, password o email de una cuenta, incluida la propia.
func CanSetRestrictedFields(actor Actor) bool {
	return actor.Role == entity.RoleSuperAdmin
}
