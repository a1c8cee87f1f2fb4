package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vendorhub/portal-api/internal/application/dto"
	"github.com/vendorhub/portal-api/internal/application/usecase"
)

// VendorHandler listado y aprobación de vendors. Accesible para SUPER_ADMIN
// o ADMIN con la capacidad manageVendors (gate en la Role Policy).
type VendorHandler struct {
	uc *usecase.ApprovalUseCase
}

// NewVendorHandler construye el handler de vendors.
func NewVendorHandler(uc *usecase.ApprovalUseCase) *VendorHandler {
	return &VendorHandler{uc: uc}
}

// List godoc
// @Summary      Listar vendors por estado de aprobación
// @Tags         vendors
// @Produce      json
// @Param        status  query  string  false  "all | pending | approved"
// @Success      200  {array}   dto.AccountResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/vendors [get]
func (h *VendorHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "VALIDATION", "filtros inválidos")
	}
	list, err := h.uc.ListVendors(c.Context(), GetActor(c), c.Query("status"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Approve godoc
// @Summary      Aprobar un vendor pendiente
// @Tags         vendors
// @Produce      json
// @Param        id   path  string  true  "ID del vendor"
// @Success      200  {object}  dto.AccountResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/approve [patch]
func (h *VendorHandler) Approve(c *fiber.Ctx) error {
	acc, err := h.uc.Approve(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(acc)
}

type revokeBody struct {
	Reason string `json:"reason"`
}

// Revoke godoc
// @Summary      Revocar la aprobación de un vendor (vuelve a pendiente)
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        id    path  string  true   "ID del vendor"
// @Param        body  body  revokeBody     false  "motivo opcional"
// @Success      200  {object}  dto.AccountResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/approve [delete]
func (h *VendorHandler) Revoke(c *fiber.Ctx) error {
	var in revokeBody
	// El cuerpo es opcional; se ignora si no parsea.
	_ = c.BodyParser(&in)
	acc, err := h.uc.Revoke(c.Context(), GetActor(c), c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(acc)
}
