package entity

// Claves del conjunto cerrado de capacidades de un ADMIN.
const (
	FlagManageVendors  = "manageVendors"
	FlagManageProducts = "manageProducts"
	FlagManageOrders   = "manageOrders"
)

// FeatureFlags capacidades de un ADMIN. El conjunto es cerrado: tres
// capacidades booleanas, todas false por defecto. Claves desconocidas se
// rechazan en la frontera HTTP, no aquí.
type FeatureFlags struct {
	ManageVendors  bool `json:"manageVendors"`
	ManageProducts bool `json:"manageProducts"`
	ManageOrders   bool `json:"manageOrders"`
}

// DefaultFeatureFlags devuelve el mapa inicial con todas las capacidades en false.
func DefaultFeatureFlags() FeatureFlags {
	return FeatureFlags{}
}

// EffectiveFlags devuelve los flags almacenados de la cuenta o los defaults
// si nunca se asignaron. Solo está definido para cuentas ADMIN; para otros
// roles los flags no se consultan.
func EffectiveFlags(a *Account) FeatureFlags {
	if a.FeatureFlags != nil {
		return *a.FeatureFlags
	}
	return DefaultFeatureFlags()
}

// FeatureFlagsPatch actualización parcial: las claves ausentes (nil)
// conservan el valor previo.
type FeatureFlagsPatch struct {
	ManageVendors  *bool `json:"manageVendors"`
	ManageProducts *bool `json:"manageProducts"`
	ManageOrders   *bool `json:"manageOrders"`
}

// Merge aplica el patch clave por clave sobre los flags existentes.
func Merge(existing FeatureFlags, patch FeatureFlagsPatch) FeatureFlags {
	out := existing
	if patch.ManageVendors != nil {
		out.ManageVendors = *patch.ManageVendors
	}
	if patch.ManageProducts != nil {
		out.ManageProducts = *patch.ManageProducts
	}
	if patch.ManageOrders != nil {
		out.ManageOrders = *patch.ManageOrders
	}
	return out
}

// ToMap proyección de los flags como mapa capacidad→bool (snapshot para el JWT).
func (f FeatureFlags) ToMap() map[string]bool {
	return map[string]bool{
		FlagManageVendors:  f.ManageVendors,
		FlagManageProducts: f.ManageProducts,
		FlagManageOrders:   f.ManageOrders,
	}
}

// FlagsFromMap reconstruye FeatureFlags desde un mapa (snapshot de un token
// emitido por nosotros). Claves desconocidas se ignoran; nil devuelve nil.
func FlagsFromMap(m map[string]bool) *FeatureFlags {
	if m == nil {
		return nil
	}
	return &FeatureFlags{
		ManageVendors:  m[FlagManageVendors],
		ManageProducts: m[FlagManageProducts],
		ManageOrders:   m[FlagManageOrders],
	}
}
