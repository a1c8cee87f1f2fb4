package http

import (
	"bytes"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/vendorhub/portal-api/internal/application/usecase"
	"github.com/vendorhub/portal-api/internal/domain/entity"
)

// FlagsHandler lectura y actualización de feature flags de admins
// (solo SUPER_ADMIN).
type FlagsHandler struct {
	uc *usecase.FlagsUseCase
}

// NewFlagsHandler construye el handler de feature flags.
func NewFlagsHandler(uc *usecase.FlagsUseCase) *FlagsHandler {
	return &FlagsHandler{uc: uc}
}

// Get godoc
// @Summary      Flags efectivos de un admin (almacenados o defaults)
// @Tags         feature-flags
// @Produce      json
// @Param        id   path  string  true  "ID del admin"
// @Success      200  {object}  dto.FeatureFlagsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/feature-flags [get]
func (h *FlagsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Merge parcial de flags de un admin
// @Tags         feature-flags
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del admin"
// @Param        body  body  entity.FeatureFlagsPatch   true  "claves a actualizar"
// @Success      200   {object}  dto.FeatureFlagsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/feature-flags [patch]
func (h *FlagsHandler) Update(c *fiber.Ctx) error {
	// El conjunto de capacidades es cerrado: una clave desconocida en el
	// cuerpo es un error de validación, no se ignora en silencio.
	var patch entity.FeatureFlagsPatch
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		return badRequest(c, "VALIDATION", "cuerpo inválido o clave de flag desconocida")
	}
	out, err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
